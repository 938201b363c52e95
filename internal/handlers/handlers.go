package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

func SendJSON(w http.ResponseWriter, v any) (int, error) {
	return sendJSONStatus(w, http.StatusOK, v)
}

func sendJSONStatus(w http.ResponseWriter, status int, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return 0, err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return w.Write(payload)
}

func SendJSONOrLog(w http.ResponseWriter, log logrus.FieldLogger, v any) {
	_, err := SendJSON(w, v)
	if err != nil {
		log.WithFields(logrus.Fields{
			"data":  v,
			"error": err,
		}).Error("failed to send data")
	}
}

func sendError(w http.ResponseWriter, log logrus.FieldLogger, status int, e error) {
	if _, err := sendJSONStatus(w, status, wrapError(e)); err != nil {
		log.WithFields(logrus.Fields{
			"sent error": e,
			"error":      err,
		}).Error("failed to send error message")
	}
}

func wrapError(err error) map[string]string {
	return map[string]string{
		"error": err.Error(),
	}
}
