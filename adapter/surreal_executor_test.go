package adapter

import (
	"context"
	"testing"

	"github.com/hatlonely/surrealauth/surql"
	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/surrealdb/surrealdb.go/pkg/models"
)

func TestNewSurrealExecutorWithOptions(t *testing.T) {
	Convey("NewSurrealExecutorWithOptions", t, func() {
		Convey("没有配置地址", func() {
			_, err := NewSurrealExecutorWithOptions(&ConnectOptions{})
			var missing *MissingEndpointError
			So(errors.As(err, &missing), ShouldBeTrue)
		})

		Convey("未连接时查询返回错误", func() {
			e, err := NewSurrealExecutorWithOptions(&ConnectOptions{Endpoint: "ws://localhost:8000/rpc"})
			So(err, ShouldBeNil)
			So(e.Connected(), ShouldBeFalse)
			_, err = e.Query(context.Background(), surql.New().Append("RETURN 1"))
			So(err, ShouldNotBeNil)
			So(e.Close(), ShouldBeNil)
		})

		Convey("已注册为 surreal", func() {
			So(Executors(), ShouldContain, "surreal")
			e, err := NewExecutorWithOptions("surreal", &ConnectOptions{Endpoint: "ws://localhost:8000/rpc"})
			So(err, ShouldBeNil)
			So(e, ShouldHaveSameTypeAs, &SurrealExecutor{})
		})
	})
}

func TestDriverValue(t *testing.T) {
	Convey("驱动类型转换", t, func() {
		Convey("绑定参数转换为驱动类型", func() {
			So(toDriverValue(surql.RecordID{Table: "user", Key: "u1"}), ShouldResemble, models.NewRecordID("user", "u1"))
			So(toDriverValue(surql.Table("user")), ShouldEqual, models.Table("user"))
			So(toDriverValue([]surql.RecordID{{Table: "user", Key: "a"}}), ShouldResemble, []models.RecordID{models.NewRecordID("user", "a")})
			So(toDriverValue([]any{surql.RecordID{Table: "user", Key: "a"}, "b"}), ShouldResemble, []any{models.NewRecordID("user", "a"), "b"})
			So(toDriverValue("plain"), ShouldEqual, "plain")
			var nilID *surql.RecordID
			So(toDriverValue(nilID), ShouldBeNil)
		})

		Convey("结果转换为 surql 类型", func() {
			result := fromDriverValue([]any{
				map[any]any{"id": models.NewRecordID("user", "u1"), "name": "Ann"},
			})
			So(result, ShouldResemble, []any{
				map[string]any{"id": surql.RecordID{Table: "user", Key: "u1"}, "name": "Ann"},
			})
			id := models.NewRecordID("session", "s1")
			So(fromDriverValue(&id), ShouldResemble, surql.RecordID{Table: "session", Key: "s1"})
			So(fromDriverValue(float64(1)), ShouldEqual, float64(1))
		})
	})
}
