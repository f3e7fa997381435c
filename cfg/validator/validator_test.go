package validator

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestValidateStruct(t *testing.T) {
	Convey("Validator 结构体校验测试", t, func() {
		type Connect struct {
			Endpoint  string `validate:"required,url"`
			Namespace string `validate:"required"`
		}

		type Options struct {
			Connect  Connect
			Database string `validate:"required,min=1"`
			Version  int    `validate:"oneof=0 1 4 6 7"`
		}

		Convey("合法结构体", func() {
			options := &Options{
				Connect:  Connect{Endpoint: "ws://localhost:8000/rpc", Namespace: "auth"},
				Database: "main",
				Version:  7,
			}
			So(ValidateStruct(options), ShouldBeNil)
			So(ValidateStruct(*options), ShouldBeNil)
		})

		Convey("嵌套字段校验失败", func() {
			options := &Options{
				Connect:  Connect{Endpoint: "not a url", Namespace: "auth"},
				Database: "main",
			}
			So(ValidateStruct(options), ShouldNotBeNil)
		})

		Convey("枚举字段校验失败", func() {
			options := &Options{
				Connect:  Connect{Endpoint: "ws://localhost:8000/rpc", Namespace: "auth"},
				Database: "main",
				Version:  3,
			}
			So(ValidateStruct(options), ShouldNotBeNil)
		})

		Convey("多层指针", func() {
			options := &Options{Database: "main"}
			So(ValidateStruct(&options), ShouldNotBeNil)
		})

		Convey("nil 对象跳过校验", func() {
			So(ValidateStruct(nil), ShouldBeNil)
		})

		Convey("nil 指针跳过校验", func() {
			var options *Options
			So(ValidateStruct(&options), ShouldBeNil)
		})

		Convey("time.Time 类型跳过校验", func() {
			now := time.Now()
			So(ValidateStruct(&now), ShouldBeNil)
		})

		Convey("基本类型跳过校验", func() {
			n := 42
			So(ValidateStruct(&n), ShouldBeNil)
			So(ValidateStruct(map[string]string{"k": "v"}), ShouldBeNil)
			So(ValidateStruct([]string{"a"}), ShouldBeNil)
		})
	})
}
