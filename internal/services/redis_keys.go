package services

import "time"

const (
	KeyBoard       = "board:%s"
	KeyBoardRounds = "board:%s:rounds"
	KeyRound       = "round:%s"

	TTLRound = 7 * 24 * time.Hour // 7 days

	MaxBoardRounds     = 100
	DefaultHistorySize = 20
)
