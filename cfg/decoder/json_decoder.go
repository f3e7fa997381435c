package decoder

import (
	"encoding/json"

	"github.com/hatlonely/surrealauth/cfg/storage"
	"github.com/pkg/errors"
)

// JsonDecoder JSON 格式解码器
type JsonDecoder struct{}

func (j *JsonDecoder) Decode(data []byte) (storage.Storage, error) {
	var result any
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, errors.Wrap(err, "json.Unmarshal failed")
	}
	return storage.NewMapStorage(result), nil
}
