// Package storage описывает контракты хранилищ cv-service и общие ошибки слоя.
package storage

import "errors"

var (
	// ErrNotFound - сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrDecode - сохранённый документ не соответствует ожидаемой форме.
	ErrDecode = errors.New("decode failed")
	// ErrInvalidArgument - некорректный идентификатор или параметры запроса к хранилищу.
	ErrInvalidArgument = errors.New("invalid argument")
)
