package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const suffixLen = 9

// NewTaskID returns "task-<unix millis>-<random suffix>".
func NewTaskID(now time.Time) string {
	return fmt.Sprintf("task-%d-%s", now.UnixMilli(), randomSuffix())
}

// NewBoardID returns "board-<unix millis>-<random suffix>". The suffix keeps
// two boards created within the same millisecond apart.
func NewBoardID(now time.Time) string {
	return fmt.Sprintf("board-%d-%s", now.UnixMilli(), randomSuffix())
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:suffixLen]
}
