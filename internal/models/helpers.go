package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return fmt.Sprintf("round_%s_%d",
		time.Now().Format("20060102"),
		uuid.New().ID())
}

func GenerateClientID() string {
	return "client_" + uuid.New().String()
}

func FormatSignal(v Value) string {
	return "Sinal: " + v.String()
}

func FormatConfidence(v Value) string {
	return "Confiança: " + v.String() + "%"
}
