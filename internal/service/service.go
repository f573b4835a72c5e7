// service содержит бизнес-логику cv-service: протокол редактирования резюме,
// сессии редактирования и профили пользователей.
package service

import "errors"

var (
	// ErrLoad - резюме не удалось получить или декодировать.
	ErrLoad = errors.New("load failed")
	// ErrSave - резюме не удалось создать или перезаписать.
	ErrSave = errors.New("save failed")
	// ErrNotLoaded - мутация до успешной загрузки резюме.
	ErrNotLoaded = errors.New("cv not loaded")
	// ErrInvalidArgument - неверные входные параметры запроса к сервису.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound - сущность отсутствует.
	ErrNotFound = errors.New("not found")
	// ErrUpload - фото не удалось записать в blob-хранилище.
	ErrUpload = errors.New("upload failed")
	// ErrInternal - прочие ошибки хранилища/контекста.
	ErrInternal = errors.New("internal")
)

// Пользовательские сообщения об ошибках.
const (
	msgLoad   = "Errore nel caricamento"
	msgDecode = "Errore nella decodifica"
	msgCreate = "Errore nella creazione"
	msgSave   = "Errore nel salvataggio"
)
