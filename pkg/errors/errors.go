// Package errors 定义存储层通用的哨兵错误，Service 层据此映射为业务错误。
package errors

import "errors"

var (
	// ErrRecordNotFound 记录不存在
	ErrRecordNotFound = errors.New("记录不存在")
	// ErrDuplicateKey 主键已存在
	ErrDuplicateKey = errors.New("主键已存在")
)
