package adapter

import (
	"bytes"
	"context"
	"testing"

	"github.com/hatlonely/surrealauth/log/logger"
	"github.com/hatlonely/surrealauth/surql"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewObservableExecutor(t *testing.T) {
	Convey("NewObservableExecutor", t, func() {
		Convey("executor 为 nil 时返回错误", func() {
			obs, err := NewObservableExecutor(nil, &ObservableOptions{}, nil)
			So(err, ShouldNotBeNil)
			So(obs, ShouldBeNil)
		})

		Convey("options 为 nil 时使用默认名称", func() {
			obs, err := NewObservableExecutor(&fakeExecutor{}, nil, nil)
			So(err, ShouldBeNil)
			So(obs.name, ShouldEqual, "surrealauth")
			So(obs.metrics, ShouldBeNil)
			So(obs.logger, ShouldBeNil)
		})

		Convey("同名指标重复创建时复用", func() {
			m1, err := NewObservableMetrics("test_reuse")
			So(err, ShouldBeNil)
			m2, err := NewObservableMetrics("test_reuse")
			So(err, ShouldBeNil)
			So(m1.queryCounter == m2.queryCounter, ShouldBeTrue)
		})
	})
}

func TestObservableExecutorQuery(t *testing.T) {
	Convey("ObservableExecutor.Query", t, func() {
		var buf bytes.Buffer
		l, err := logger.NewSLogWithWriter(&logger.SLogOptions{Level: "info", Format: "text"}, &buf)
		So(err, ShouldBeNil)

		fake := &fakeExecutor{results: []any{float64(1)}}
		obs, err := NewObservableExecutor(fake, &ObservableOptions{
			Name:          "test_observable_query",
			EnableMetrics: true,
			EnableLogging: true,
			EnableTracing: true,
		}, l)
		So(err, ShouldBeNil)

		Convey("成功的查询", func() {
			So(obs.Connect(context.Background()), ShouldBeNil)
			So(obs.Connected(), ShouldBeTrue)

			query := surql.New().Append("RETURN ").Bind(1)
			result, err := obs.Query(withOperation(context.Background(), "count"), query)
			So(err, ShouldBeNil)
			So(result, ShouldEqual, float64(1))
			So(testutil.ToFloat64(obs.metrics.queryCounter.WithLabelValues("count", "success")), ShouldBeGreaterThanOrEqualTo, float64(1))
			So(buf.String(), ShouldContainSubstring, "surrealdb operation completed")
			So(buf.String(), ShouldContainSubstring, "operation=count")
		})

		Convey("失败的查询", func() {
			fake.err = errors.New("boom")
			_, err := obs.Query(context.Background(), surql.New().Append("RETURN 1"))
			So(err, ShouldNotBeNil)
			So(testutil.ToFloat64(obs.metrics.queryCounter.WithLabelValues("query", "error")), ShouldBeGreaterThanOrEqualTo, float64(1))
			So(buf.String(), ShouldContainSubstring, "surrealdb operation failed")
			So(buf.String(), ShouldContainSubstring, "boom")
		})

		Convey("Close", func() {
			So(obs.Close(), ShouldBeNil)
			So(fake.closed, ShouldBeTrue)
		})
	})
}

func TestOperationOf(t *testing.T) {
	Convey("operationOf", t, func() {
		So(operationOf(context.Background()), ShouldEqual, "query")
		So(operationOf(withOperation(context.Background(), "findMany")), ShouldEqual, "findMany")
		So(operationOf(withOperation(context.Background(), "")), ShouldEqual, "query")
	})
}
