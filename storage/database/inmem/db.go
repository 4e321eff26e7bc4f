package inmemdb

import (
	"sync"

	"github.com/trezcool/eduforum/core/chat"
)

type (
	DB struct {
		chat *chatTable
	}

	chatTable struct {
		sync.RWMutex
		turns []chat.Turn // in insertion order
	}
)

func Open() *DB {
	return &DB{chat: &chatTable{}}
}
