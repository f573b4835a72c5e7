package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pribylovaa/cv-service/internal/speech"
	apierrors "github.com/pribylovaa/cv-service/internal/transport/http/errors"
)

const defaultAudioMIME = "audio/wav"

// Transcribe распознаёт аудио из тела запроса и отдаёт NDJSON-поток:
// строка на каждый промежуточный результат и финальная строка с final=true.
// Ошибка до первой строки - обычный JSON-ответ об ошибке; после - строка-конверт {"error":{...}}.
// Обрыв соединения клиентом завершает запись штатно.
func (h *Handlers) Transcribe(w http.ResponseWriter, r *http.Request) {
	if _, err := caller(r); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	mime := r.Header.Get("Content-Type")
	if mime == "" {
		mime = defaultAudioMIME
	}

	flusher, _ := w.(http.Flusher)
	enc := json.NewEncoder(w)
	started := false

	emit := func(line any) {
		if !started {
			w.Header().Set("Content-Type", "application/x-ndjson")
			w.WriteHeader(http.StatusOK)
			started = true
		}

		_ = enc.Encode(line)
		if flusher != nil {
			flusher.Flush()
		}
	}

	sess := speech.NewSession(h.Recognizer)
	final, err := sess.Start(r.Context(), r.Body, mime, func(text string) {
		emit(transcriptLine{Transcript: text})
	})
	if err != nil {
		// Сообщения о разрешениях безопасны для пользователя, детали движка - нет.
		st := sess.State()
		msg := ""
		if st.Permission != speech.PermissionAuthorized {
			msg = st.ErrorMessage
		}
		err = apierrors.WithMessage(err, msg)

		if !started {
			apierrors.WriteError(w, r, err)
			return
		}

		_, resp := apierrors.ToHTTP(err)
		resp.Error.RequestID = r.Header.Get("X-Request-Id")
		emit(resp)
		return
	}

	emit(transcriptLine{Transcript: final, Final: true})
}
