package adapter

import (
	"context"
	"fmt"
	"sync"

	"github.com/hatlonely/surrealauth/surql"
	"github.com/pkg/errors"
	surrealdb "github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/models"
)

func init() {
	RegisterExecutor("surreal", func(options *ConnectOptions) (Executor, error) {
		return NewSurrealExecutorWithOptions(options)
	})
}

// SurrealExecutor 基于 surrealdb.go 的执行器
type SurrealExecutor struct {
	options ConnectOptions

	mu sync.RWMutex
	db *surrealdb.DB
}

func NewSurrealExecutorWithOptions(options *ConnectOptions) (*SurrealExecutor, error) {
	if options == nil || options.Endpoint == "" {
		return nil, &MissingEndpointError{}
	}
	return &SurrealExecutor{options: *options}, nil
}

func (e *SurrealExecutor) Connect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	db, err := surrealdb.New(e.options.Endpoint)
	if err != nil {
		return errors.Wrapf(err, "surrealdb.New [%s] failed", e.options.Endpoint)
	}

	if e.options.Token != "" {
		if err := db.Authenticate(e.options.Token); err != nil {
			db.Close()
			return errors.Wrap(err, "db.Authenticate failed")
		}
	} else if e.options.Username != "" {
		if _, err := db.SignIn(&surrealdb.Auth{
			Namespace: e.options.Namespace,
			Database:  e.options.Database,
			Username:  e.options.Username,
			Password:  e.options.Password,
		}); err != nil {
			db.Close()
			return errors.Wrap(err, "db.SignIn failed")
		}
	}

	if e.options.Namespace != "" || e.options.Database != "" {
		if err := db.Use(e.options.Namespace, e.options.Database); err != nil {
			db.Close()
			return errors.Wrapf(err, "db.Use [%s/%s] failed", e.options.Namespace, e.options.Database)
		}
	}

	e.mu.Lock()
	e.db = db
	e.mu.Unlock()
	return nil
}

func (e *SurrealExecutor) Connected() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.db != nil
}

func (e *SurrealExecutor) Query(ctx context.Context, query *surql.Query) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.RLock()
	db := e.db
	e.mu.RUnlock()
	if db == nil {
		return nil, errors.New("not connected")
	}

	vars := map[string]interface{}{}
	for k, v := range query.Vars() {
		vars[k] = toDriverValue(v)
	}

	results, err := surrealdb.Query[any](db, query.Text(), vars)
	if err != nil {
		return nil, errors.Wrap(err, "surrealdb.Query failed")
	}
	if results == nil || len(*results) == 0 {
		return nil, nil
	}

	result := (*results)[0]
	if result.Status == "ERR" {
		return nil, errors.Errorf("query failed: %v", result.Result)
	}
	return fromDriverValue(result.Result), nil
}

func (e *SurrealExecutor) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.db == nil {
		return nil
	}
	err := e.db.Close()
	e.db = nil
	if err != nil {
		return errors.Wrap(err, "db.Close failed")
	}
	return nil
}

// toDriverValue 将记录标识和表转换为驱动的类型
func toDriverValue(v any) any {
	switch val := v.(type) {
	case surql.RecordID:
		return models.NewRecordID(val.Table, val.Key)
	case *surql.RecordID:
		if val == nil {
			return nil
		}
		return models.NewRecordID(val.Table, val.Key)
	case []surql.RecordID:
		ids := make([]models.RecordID, len(val))
		for i, id := range val {
			ids[i] = models.NewRecordID(id.Table, id.Key)
		}
		return ids
	case surql.Table:
		return models.Table(val)
	case []any:
		items := make([]any, len(val))
		for i, item := range val {
			items[i] = toDriverValue(item)
		}
		return items
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[k] = toDriverValue(item)
		}
		return m
	}
	return v
}

// fromDriverValue 将驱动返回的记录标识转换为 surql.RecordID，map 的 key 统一为 string
func fromDriverValue(v any) any {
	switch val := v.(type) {
	case models.RecordID:
		return surql.RecordID{Table: val.Table, Key: val.ID}
	case *models.RecordID:
		if val == nil {
			return nil
		}
		return surql.RecordID{Table: val.Table, Key: val.ID}
	case []any:
		items := make([]any, len(val))
		for i, item := range val {
			items[i] = fromDriverValue(item)
		}
		return items
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[k] = fromDriverValue(item)
		}
		return m
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[fmt.Sprint(k)] = fromDriverValue(item)
		}
		return m
	}
	return v
}
