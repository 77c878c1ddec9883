package domain

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

// Keywords recognised as commands instead of readings.
const (
	DeleteKeyword  = "削除"
	HistoryKeyword = "履歴"
)

// Command is the classification of an inbound text. It is one of
// DeleteCommand, HistoryCommand, ReadingCommand or InvalidCommand.
type Command interface {
	command()
}

// DeleteCommand removes the sender's latest reading.
type DeleteCommand struct{}

// HistoryCommand lists the sender's recent readings.
type HistoryCommand struct{}

// ReadingCommand carries a weight in kilograms.
type ReadingCommand struct {
	Weight float64
}

// InvalidCommand is text that is neither a keyword nor a number.
type InvalidCommand struct{}

func (DeleteCommand) command()  {}
func (HistoryCommand) command() {}
func (ReadingCommand) command() {}
func (InvalidCommand) command() {}

var numericPrefix = regexp.MustCompile(`^[+-]?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?`)

// ParseCommand classifies text. Numbers are read with leading-prefix
// semantics, so "65.4kg" is a reading of 65.4.
func ParseCommand(text string) Command {
	text = strings.TrimSpace(text)
	switch text {
	case DeleteKeyword:
		return DeleteCommand{}
	case HistoryKeyword:
		return HistoryCommand{}
	}
	v, ok := parseLeadingFloat(text)
	if !ok {
		return InvalidCommand{}
	}
	return ReadingCommand{Weight: v}
}

func parseLeadingFloat(text string) (float64, bool) {
	// Full-width digits are common from Japanese keyboards.
	m := numericPrefix.FindString(width.Narrow.String(text))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
