package repo

import (
	"errors"
	"fmt"
)

// ErrNotFound 仅由 Catalog.Get 这类严格存在性检查返回。
// 批量查询和回填查询用空结果表示不存在，不返回该错误。
var ErrNotFound = errors.New("repository not found")

// ErrStore 匹配所有存储层失败，可用 errors.Is(err, ErrStore) 判断。
var ErrStore = errors.New("catalog store failure")

// StoreError 包装一次失败的存储操作，原样保留底层错误。
// 存储不可达时 FindOrCreate 返回的是 StoreError，而不是“记录不存在”。
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is 让任意 StoreError 都能匹配 ErrStore。
func (e *StoreError) Is(target error) bool {
	return target == ErrStore
}

func storeError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
