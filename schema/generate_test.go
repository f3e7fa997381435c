package schema

import (
	"testing"

	"github.com/hatlonely/surrealauth/rdb"
	"github.com/pkg/errors"
	"github.com/sebdah/goldie/v2"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/require"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestGenerateGolden(t *testing.T) {
	t.Run("auth_tables", func(t *testing.T) {
		result, err := Generate(AuthTables(), nil)
		require.NoError(t, err)
		require.Equal(t, DefaultPath, result.Path)
		newGoldie(t).Assert(t, "auth_tables", []byte(result.Code))
	})

	t.Run("organization_tables", func(t *testing.T) {
		tables, err := LoadTables("testdata/organization.yaml")
		require.NoError(t, err)
		result, err := Generate(tables, &GenerateOptions{File: "./schema.surql"})
		require.NoError(t, err)
		require.Equal(t, "./schema.surql", result.Path)
		newGoldie(t).Assert(t, "organization_tables", []byte(result.Code))
	})
}

func TestGenerate(t *testing.T) {
	Convey("测试 Generate", t, func() {
		Convey("两次生成结果一致", func() {
			r1, err := Generate(AuthTables(), nil)
			So(err, ShouldBeNil)
			r2, err := Generate(AuthTables(), nil)
			So(err, ShouldBeNil)
			So(r1.Code, ShouldEqual, r2.Code)
		})

		Convey("跳过 nil 表和 nil 字段", func() {
			result, err := Generate([]*TableModel{
				nil,
				{Key: "post", Fields: []*FieldDefinition{
					nil,
					{Key: "title", Type: Scalar("string"), Required: true},
				}},
			}, nil)
			So(err, ShouldBeNil)
			So(result.Code, ShouldEqual, "DEFINE TABLE post SCHEMALESS;\nDEFINE FIELD title ON TABLE post TYPE string;\n")
		})

		Convey("字段名与表名转义", func() {
			result, err := Generate([]*TableModel{
				{ModelName: "audit-log", Fields: []*FieldDefinition{
					{Key: "at", FieldName: "created at", Type: Scalar("date"), Unique: true},
				}},
			}, nil)
			So(err, ShouldBeNil)
			So(result.Code, ShouldEqual, "DEFINE TABLE ⟨audit-log⟩ SCHEMALESS;\n"+
				"DEFINE FIELD ⟨created at⟩ ON TABLE ⟨audit-log⟩ TYPE option<datetime>;\n"+
				"DEFINE INDEX ⟨audit-logAudit-logUnique⟩ ON TABLE ⟨audit-log⟩ COLUMNS ⟨created at⟩ UNIQUE;\n")
		})

		Convey("数组类型与引用类型", func() {
			result, err := Generate([]*TableModel{
				{ModelName: "post", Fields: []*FieldDefinition{
					{Key: "tags", Type: Scalar("string[]"), Required: true},
					{Key: "scores", Type: Scalar("number[]")},
					{Key: "authorId", Type: Scalar("string"), References: &rdb.Reference{Model: "my-user"}},
				}},
			}, nil)
			So(err, ShouldBeNil)
			So(result.Code, ShouldEqual, "DEFINE TABLE post SCHEMALESS;\n"+
				"DEFINE FIELD tags ON TABLE post TYPE array<string>;\n"+
				"DEFINE FIELD scores ON TABLE post TYPE option<array<number>>;\n"+
				"DEFINE FIELD authorId ON TABLE post TYPE option<record<my-user>>;\n")
		})

		Convey("字面量序列类型不支持", func() {
			_, err := Generate([]*TableModel{
				{ModelName: "member", Fields: []*FieldDefinition{
					{Key: "role", Type: Literals("owner", "admin"), Required: true},
				}},
			}, nil)
			var e *UnsupportedTypeError
			So(errors.As(err, &e), ShouldBeTrue)
			So(e.Table, ShouldEqual, "member")
			So(e.Field, ShouldEqual, "role")
			So(err.Error(), ShouldEqual, `array type not supported: ["owner","admin"]`)
		})

		Convey("未知标量类型不支持", func() {
			_, err := Generate([]*TableModel{
				{ModelName: "user", Fields: []*FieldDefinition{{Key: "meta", Type: Scalar("json")}}},
			}, nil)
			var e *UnsupportedTypeError
			So(errors.As(err, &e), ShouldBeTrue)
			So(err.Error(), ShouldEqual, `unsupported type: "json"`)
		})

		Convey("只有 user 时 organization 只允许创建", func() {
			result, err := Generate([]*TableModel{
				{ModelName: "user"},
				{ModelName: "organization"},
			}, nil)
			So(err, ShouldBeNil)
			So(result.Code, ShouldEqual, "DEFINE TABLE user SCHEMALESS\n"+
				"  PERMISSIONS FOR select, update WHERE id = $auth.id;\n"+
				"\n"+
				"DEFINE TABLE organization SCHEMALESS\n"+
				"  PERMISSIONS\n"+
				"  FOR create WHERE $auth.id != null;\n")
		})

		Convey("自定义角色集合", func() {
			result, err := Generate([]*TableModel{
				{ModelName: "organization"},
				{ModelName: "member"},
			}, &GenerateOptions{Roles: &RoleSets{OrgAdmin: []string{"root"}}})
			So(err, ShouldBeNil)
			So(result.Code, ShouldContainSubstring, "role IN ['root']")
			So(result.Code, ShouldNotContainSubstring, "'admin'")
		})

		Convey("空输入", func() {
			result, err := Generate(nil, nil)
			So(err, ShouldBeNil)
			So(result.Code, ShouldEqual, "")
			So(result.Path, ShouldEqual, DefaultPath)
		})
	})
}

func TestStorageType(t *testing.T) {
	Convey("测试 StorageType", t, func() {
		cases := map[string]string{
			"string":   "string",
			"number":   "number",
			"boolean":  "bool",
			"date":     "datetime",
			"number[]": "array<number>",
			"string[]": "array<string>",
		}
		for name, want := range cases {
			typ, err := StorageType(&FieldDefinition{Key: "f", Type: Scalar(name), Required: true})
			So(err, ShouldBeNil)
			So(typ, ShouldEqual, want)

			typ, err = StorageType(&FieldDefinition{Key: "f", Type: Scalar(name)})
			So(err, ShouldBeNil)
			So(typ, ShouldEqual, "option<"+want+">")
		}
	})
}

func TestJoinCamelCase(t *testing.T) {
	Convey("测试 joinCamelCase", t, func() {
		So(joinCamelCase("user", "user", "unique"), ShouldEqual, "userUserUnique")
		So(joinCamelCase("teamMember", "teamMember", "unique"), ShouldEqual, "teamMemberTeamMemberUnique")
		So(joinCamelCase("", "a"), ShouldEqual, "A")
		So(joinCamelCase("x", ""), ShouldEqual, "x")
	})
}
