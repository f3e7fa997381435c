package adapter

import (
	"github.com/hatlonely/surrealauth/log"
	"github.com/hatlonely/surrealauth/schema"
)

// ConnectOptions 数据库连接配置
type ConnectOptions struct {
	// Endpoint 数据库地址，如 ws://localhost:8000/rpc
	Endpoint  string `cfg:"endpoint" validate:"required"`
	Namespace string `cfg:"namespace"`
	Database  string `cfg:"database"`
	// Token 不为空时直接使用 token 认证，否则使用用户名密码登录
	Token    string `cfg:"token"`
	Username string `cfg:"username"`
	Password string `cfg:"password"`
}

// Options 适配器配置
type Options struct {
	// Executor 执行器类型
	Executor string         `cfg:"executor" def:"surreal"`
	Connect  ConnectOptions `cfg:"connect"`

	// Tables 表描述文件，为空时使用内置的认证表
	Tables string `cfg:"tables"`
	// Roles 生成权限规则时使用的角色集合
	Roles *schema.RoleSets `cfg:"roles"`

	// Debug 打印每条查询及其参数
	Debug bool `cfg:"debug"`
	// GenerateID 创建记录时没有 id 则生成 UUID
	GenerateID bool         `cfg:"generateId"`
	UUID       *UUIDOptions `cfg:"uuid"`

	Observable *ObservableOptions `cfg:"observable"`
	Logger     *log.Options       `cfg:"logger"`
}
