package surql

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestEscapeIdent(t *testing.T) {
	Convey("测试 EscapeIdent", t, func() {
		Convey("普通标识符原样返回", func() {
			So(EscapeIdent("user"), ShouldEqual, "user")
			So(EscapeIdent("user_id"), ShouldEqual, "user_id")
			So(EscapeIdent("_x1"), ShouldEqual, "_x1")
			So(EscapeIdent("teamMember"), ShouldEqual, "teamMember")
		})

		Convey("数字开头需要转义", func() {
			So(EscapeIdent("1"), ShouldEqual, "⟨1⟩")
			So(EscapeIdent("123abc"), ShouldEqual, "⟨123abc⟩")
		})

		Convey("特殊字符需要转义", func() {
			So(EscapeIdent("a-b"), ShouldEqual, "⟨a-b⟩")
			So(EscapeIdent("a b"), ShouldEqual, "⟨a b⟩")
			So(EscapeIdent(""), ShouldEqual, "⟨⟩")
			So(EscapeIdent("用户"), ShouldEqual, "⟨用户⟩")
		})

		Convey("右尖括号被转义", func() {
			So(EscapeIdent("a⟩b"), ShouldEqual, `⟨a\⟩b⟩`)
		})
	})
}

func TestRecordID(t *testing.T) {
	Convey("测试 RecordID", t, func() {
		Convey("文本形式", func() {
			So(NewRecordID("user", "abc").String(), ShouldEqual, "user:abc")
			So(NewRecordID("user", "1").String(), ShouldEqual, "user:⟨1⟩")
			So(NewRecordID("user", 1).String(), ShouldEqual, "user:1")
			So(NewRecordID("user", float64(42)).String(), ShouldEqual, "user:42")
			So(NewRecordID("my table", "x-y").String(), ShouldEqual, "⟨my table⟩:⟨x-y⟩")
		})

		Convey("已是 RecordID 时保持不变", func() {
			id := NewRecordID("session", "s1")
			So(NewRecordID("user", id), ShouldResemble, id)
			So(NewRecordID("user", &id), ShouldResemble, id)
		})

		Convey("KeyString", func() {
			So(NewRecordID("user", "abc").KeyString(), ShouldEqual, "abc")
			So(NewRecordID("user", 7).KeyString(), ShouldEqual, "7")
			So(RecordID{Table: "user"}.KeyString(), ShouldEqual, "")
		})
	})
}

func TestStripRecordID(t *testing.T) {
	Convey("测试 StripRecordID", t, func() {
		Convey("字符串形式", func() {
			So(StripRecordID("user", "user:abc"), ShouldEqual, "abc")
			So(StripRecordID("user", "user:⟨1⟩"), ShouldEqual, "1")
			So(StripRecordID("user", `user:⟨a\⟩b⟩`), ShouldEqual, "a⟩b")
			So(StripRecordID("my table", "⟨my table⟩:⟨x-y⟩"), ShouldEqual, "x-y")
		})

		Convey("前缀不匹配时只去掉转义", func() {
			So(StripRecordID("user", "session:abc"), ShouldEqual, "session:abc")
			So(StripRecordID("user", "plain"), ShouldEqual, "plain")
		})

		Convey("RecordID 值", func() {
			So(StripRecordID("user", NewRecordID("user", "abc")), ShouldEqual, "abc")
			id := NewRecordID("user", 9)
			So(StripRecordID("user", &id), ShouldEqual, "9")
		})

		Convey("其他类型原样返回", func() {
			So(StripRecordID("user", 12), ShouldEqual, 12)
			So(StripRecordID("user", nil), ShouldBeNil)
		})
	})
}

func TestQuery(t *testing.T) {
	Convey("测试 Query 构建", t, func() {
		Convey("空查询", func() {
			q := New()
			So(q.Text(), ShouldEqual, "")
			So(q.Values(), ShouldBeEmpty)
			So(q.Vars(), ShouldBeEmpty)
			So(q.Segments(), ShouldResemble, []string{""})
		})

		Convey("文本与参数分开保存", func() {
			q := New().Append("SELECT * FROM ").Bind(Table("user")).Append(" WHERE name = ").Bind("Ann")
			So(q.Text(), ShouldEqual, "SELECT * FROM $bind__1 WHERE name = $bind__2")
			So(q.Segments(), ShouldResemble, []string{"SELECT * FROM ", " WHERE name = ", ""})
			So(q.Values(), ShouldResemble, []any{Table("user"), "Ann"})
			So(q.Vars(), ShouldResemble, map[string]any{
				"bind__1": Table("user"),
				"bind__2": "Ann",
			})
		})

		Convey("记录参数对应的字段", func() {
			q := New().Append("UPDATE ").Bind(Table("user")).Append(" SET name = ").BindField("name", "Ann")
			So(q.Text(), ShouldEqual, "UPDATE $bind__1 SET name = $bind__2")
			So(q.LabeledVars(), ShouldResemble, map[string]any{
				"bind__1":      Table("user"),
				"bind__2.name": "Ann",
			})
			So(q.Vars(), ShouldContainKey, "bind__2")
		})

		Convey("连续绑定参数", func() {
			q := New().Bind(1).Bind(2).Append(")")
			So(q.Text(), ShouldEqual, "$bind__1$bind__2)")
		})

		Convey("Values 返回副本", func() {
			q := New().Bind("a")
			values := q.Values()
			values[0] = "b"
			So(q.Values()[0], ShouldEqual, "a")
		})

		Convey("Inline 内联参数", func() {
			q := New().Append("SELECT * FROM ").
				Bind([]RecordID{NewRecordID("user", "1"), NewRecordID("user", "2")}).
				Append(" LIMIT ").Bind(10)
			So(q.Inline(), ShouldEqual, "SELECT * FROM [user:⟨1⟩, user:⟨2⟩] LIMIT 10")
		})
	})
}

func TestLiteral(t *testing.T) {
	Convey("测试 Literal", t, func() {
		So(Literal(nil), ShouldEqual, "NONE")
		So(Literal(`a"b`), ShouldEqual, `"a\"b"`)
		So(Literal(true), ShouldEqual, "true")
		So(Literal(Table("user")), ShouldEqual, "user")
		So(Literal([]any{"a", 1}), ShouldEqual, `["a", 1]`)
		So(Literal([]string{"x"}), ShouldEqual, `["x"]`)
		So(Literal(map[string]any{"b": 2, "a": 1}), ShouldEqual, "{ a: 1, b: 2 }")
		So(Literal(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)), ShouldEqual, `d"2024-01-02T03:04:05Z"`)
	})
}
