package adapter

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/hatlonely/surrealauth/cfg/validator"
	"github.com/hatlonely/surrealauth/log"
	"github.com/hatlonely/surrealauth/log/logger"
	"github.com/hatlonely/surrealauth/rdb"
	"github.com/hatlonely/surrealauth/schema"
	"github.com/pkg/errors"
)

// Adapter 将认证框架的存储请求翻译为 SurrealQL 并执行
type Adapter struct {
	executor Executor
	tables   []*schema.TableModel
	resolver rdb.FieldResolver
	roles    *schema.RoleSets
	idgen    IDGenerator

	debug  bool
	logger logger.Logger

	mu sync.Mutex
}

func NewAdapterWithOptions(options *Options) (*Adapter, error) {
	if options == nil || options.Connect.Endpoint == "" {
		return nil, &MissingEndpointError{}
	}
	if err := validator.ValidateStruct(options); err != nil {
		return nil, errors.WithMessage(err, "invalid options")
	}

	l, err := newLogger(options)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create logger")
	}

	tables := schema.AuthTables()
	if options.Tables != "" {
		if tables, err = schema.LoadTables(options.Tables); err != nil {
			return nil, errors.WithMessage(err, "failed to load tables")
		}
	}

	name := options.Executor
	if name == "" {
		name = "surreal"
	}
	executor, err := NewExecutorWithOptions(name, &options.Connect)
	if err != nil {
		return nil, err
	}
	if options.Observable != nil {
		if executor, err = NewObservableExecutor(executor, options.Observable, l); err != nil {
			return nil, errors.WithMessage(err, "failed to create observable executor")
		}
	}

	a := &Adapter{
		executor: executor,
		tables:   tables,
		resolver: schema.NewResolver(tables),
		roles:    options.Roles,
		debug:    options.Debug,
		logger:   l.WithGroup("adapter"),
	}
	if options.GenerateID {
		a.idgen = NewUUIDGeneratorWithOptions(options.UUID)
	}
	return a, nil
}

// newLogger debug 模式下未配置日志时使用 debug 级别的日志器
func newLogger(options *Options) (logger.Logger, error) {
	if options.Logger == nil && options.Debug {
		return log.NewLoggerWithOptions(&log.Options{Level: "debug", Format: "text"})
	}
	return log.NewLoggerWithOptions(options.Logger)
}

// Resolver 适配器使用的字段解析器
func (a *Adapter) Resolver() rdb.FieldResolver {
	return a.resolver
}

// ensureConnection 未连接时建立连接，并发调用只会建立一次
func (a *Adapter) ensureConnection(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.executor.Connected() {
		return nil
	}
	if err := a.executor.Connect(ctx); err != nil {
		return errors.WithMessage(err, "failed to connect")
	}
	return nil
}

// Execute 翻译并执行请求，返回未经转换的语句结果
func (a *Adapter) Execute(ctx context.Context, req rdb.Request) (any, error) {
	query, err := rdb.Translate(req, a.resolver)
	if err != nil {
		return nil, err
	}
	if err := a.ensureConnection(ctx); err != nil {
		return nil, err
	}

	method := string(req.Method())
	if a.debug {
		a.logger.DebugContext(ctx, "query", "method", method, "sql", query.Text(), "vars", query.LabeledVars())
	}

	result, err := a.executor.Query(withOperation(ctx, method), query)
	if err != nil {
		return nil, errors.WithMessagef(err, "%s [%s] failed", method, rdb.ModelOf(req))
	}
	return result, nil
}

// Do 按请求方法执行并转换结果，返回值与对应方法一致
func (a *Adapter) Do(ctx context.Context, req rdb.Request) (any, error) {
	switch r := req.(type) {
	case *rdb.CountRequest:
		return a.Count(ctx, r)
	case *rdb.FindOneRequest:
		return a.FindOne(ctx, r)
	case *rdb.FindManyRequest:
		return a.FindMany(ctx, r)
	case *rdb.CreateRequest:
		return a.Create(ctx, r)
	case *rdb.UpdateRequest:
		return a.Update(ctx, r)
	case *rdb.UpdateManyRequest:
		return a.UpdateMany(ctx, r)
	case *rdb.DeleteRequest:
		return nil, a.Delete(ctx, r)
	case *rdb.DeleteManyRequest:
		return a.DeleteMany(ctx, r)
	case nil:
		return nil, rdb.ErrNilRequest
	}
	return nil, rdb.ErrUnknownMethod
}

func (a *Adapter) Count(ctx context.Context, req *rdb.CountRequest) (int64, error) {
	result, err := a.Execute(ctx, req)
	if err != nil {
		return 0, err
	}
	return toInt64(result), nil
}

// FindOne 没有匹配记录时返回 nil
func (a *Adapter) FindOne(ctx context.Context, req *rdb.FindOneRequest) (any, error) {
	result, err := a.Execute(ctx, req)
	if err != nil {
		return nil, err
	}
	row := first(result)
	if row == nil {
		return nil, nil
	}
	return TransformOutput(a.resolver, req.Model, row), nil
}

// FindMany 没有匹配记录时返回空列表
func (a *Adapter) FindMany(ctx context.Context, req *rdb.FindManyRequest) ([]any, error) {
	result, err := a.Execute(ctx, req)
	if err != nil {
		return nil, err
	}
	return TransformRows(a.resolver, req.Model, result), nil
}

// Create 开启 GenerateID 且数据中没有 id 时生成 id，没有返回记录时返回 *CreateFailedError
func (a *Adapter) Create(ctx context.Context, req *rdb.CreateRequest) (any, error) {
	if req != nil && a.idgen != nil && !req.Data.Has(rdb.IDField) {
		r := *req
		r.Data = req.Data.With(rdb.IDField, a.idgen.Generate())
		req = &r
	}

	result, err := a.Execute(ctx, req)
	if err != nil {
		return nil, err
	}
	row := first(result)
	if row == nil {
		return nil, &CreateFailedError{Model: req.Model}
	}
	return TransformOutput(a.resolver, req.Model, row), nil
}

// Update 返回第一条更新后的记录，没有匹配时返回 nil
func (a *Adapter) Update(ctx context.Context, req *rdb.UpdateRequest) (any, error) {
	result, err := a.Execute(ctx, req)
	if err != nil {
		return nil, err
	}
	row := first(result)
	if row == nil {
		return nil, nil
	}
	return TransformOutput(a.resolver, req.Model, row), nil
}

func (a *Adapter) UpdateMany(ctx context.Context, req *rdb.UpdateManyRequest) (int64, error) {
	result, err := a.Execute(ctx, req)
	if err != nil {
		return 0, err
	}
	return toInt64(result), nil
}

func (a *Adapter) Delete(ctx context.Context, req *rdb.DeleteRequest) error {
	_, err := a.Execute(ctx, req)
	return err
}

func (a *Adapter) DeleteMany(ctx context.Context, req *rdb.DeleteManyRequest) (int64, error) {
	result, err := a.Execute(ctx, req)
	if err != nil {
		return 0, err
	}
	return toInt64(result), nil
}

// CreateSchema 使用适配器的表描述生成 schema，file 为空时使用默认路径
func (a *Adapter) CreateSchema(file string) (*schema.Result, error) {
	return schema.Generate(a.tables, &schema.GenerateOptions{File: file, Roles: a.roles})
}

func (a *Adapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.executor.Connected() {
		return nil
	}
	return a.executor.Close()
}

// first 结果是列表时取第一个元素，空列表返回 nil
func first(result any) any {
	switch v := result.(type) {
	case nil:
		return nil
	case []any:
		if len(v) == 0 {
			return nil
		}
		return v[0]
	case []map[string]any:
		if len(v) == 0 {
			return nil
		}
		return v[0]
	}
	return result
}

// toInt64 数值结果转换为 int64，非数值返回 0
func toInt64(result any) int64 {
	switch v := result.(type) {
	case int:
		return int64(v)
	case int8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case uint:
		return int64(v)
	case uint8:
		return int64(v)
	case uint16:
		return int64(v)
	case uint32:
		return int64(v)
	case uint64:
		return int64(v)
	case float32:
		return int64(v)
	case float64:
		return int64(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
		if f, err := v.Float64(); err == nil {
			return int64(f)
		}
	}
	return 0
}
