package adapter

import (
	"context"
	"sort"
	"sync"

	"github.com/hatlonely/surrealauth/surql"
	"github.com/pkg/errors"
)

// Executor 查询执行器，绑定参数以变量形式传递，不插入查询文本
type Executor interface {
	Connect(ctx context.Context) error
	Connected() bool
	// Query 执行单条语句，返回该语句的结果
	Query(ctx context.Context, query *surql.Query) (any, error)
	Close() error
}

// ExecutorFactory 根据连接配置创建执行器
type ExecutorFactory func(options *ConnectOptions) (Executor, error)

var (
	executorsMu sync.RWMutex
	executors   = map[string]ExecutorFactory{}
)

// RegisterExecutor 注册执行器，同名覆盖
func RegisterExecutor(name string, factory ExecutorFactory) {
	executorsMu.Lock()
	defer executorsMu.Unlock()
	executors[name] = factory
}

// Executors 已注册的执行器名称
func Executors() []string {
	executorsMu.RLock()
	defer executorsMu.RUnlock()

	names := make([]string, 0, len(executors))
	for name := range executors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewExecutorWithOptions 创建执行器，名称未注册时返回 ErrUnknownExecutor
func NewExecutorWithOptions(name string, options *ConnectOptions) (Executor, error) {
	executorsMu.RLock()
	factory, ok := executors[name]
	executorsMu.RUnlock()
	if !ok {
		return nil, errors.WithMessagef(ErrUnknownExecutor, "executor [%s], available %v", name, Executors())
	}

	executor, err := factory(options)
	if err != nil {
		return nil, errors.WithMessagef(err, "create executor [%s] failed", name)
	}
	return executor, nil
}
