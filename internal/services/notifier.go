package services

import (
	"log"

	"costumes_back_end/internal/store"
)

// LogNotifier écrit les toasts dans le journal du serveur
type LogNotifier struct{}

func (LogNotifier) Success(msg string) { log.Println("✅", msg) }
func (LogNotifier) Error(msg string)   { log.Println("❌", msg) }

// MultiNotifier diffuse chaque message à plusieurs destinataires
type MultiNotifier []store.Notifier

func (m MultiNotifier) Success(msg string) {
	for _, n := range m {
		if n != nil {
			n.Success(msg)
		}
	}
}

func (m MultiNotifier) Error(msg string) {
	for _, n := range m {
		if n != nil {
			n.Error(msg)
		}
	}
}
