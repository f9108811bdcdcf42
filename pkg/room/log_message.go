package room

import (
	"tienlen-server/pkg/playable"
)

const logMessageLimit = 25

// addLogMessages adds log messages, keeping the most recent
// Note: this must only be called from within the run loop
func (d *Dealer) addLogMessages(messages []*playable.LogMessage) {
	m := append(d.logMessages, messages...)
	count := len(m)
	if count > logMessageLimit {
		m = append([]*playable.LogMessage{}, m[count-logMessageLimit:]...)
	}

	d.logMessages = m
}

// drainLogMessages collects everything the game has sent so far
// Note: this must only be called from within the run loop
func (d *Dealer) drainLogMessages() {
	for {
		select {
		case messages := <-d.game.LogChan():
			d.addLogMessages(messages)
		default:
			return
		}
	}
}
