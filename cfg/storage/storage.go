package storage

// Storage 配置数据存储接口
type Storage interface {
	// Sub 获取子配置，key 用点号表示多级嵌套，[] 表示数组索引
	// 例如 "adapter.connect.endpoint"、"servers[0].port"
	Sub(key string) Storage

	// ConvertTo 将配置数据转成结构体或者 map/slice 等任意结构
	// 结构体字段名依次取 cfg、json、yaml tag，匹配时忽略大小写
	ConvertTo(object any) error
}
