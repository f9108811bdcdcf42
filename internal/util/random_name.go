package util

import (
	"fmt"
	"tienlen-server/internal/rng"
)

var adjectives = []string{
	"Lucky", "Golden", "Jade", "Crimson", "Silent", "Laughing", "Sleepy", "Bold", "Wandering", "Clever",
	"Patient", "Restless", "Hidden", "Dancing", "Thundering", "Misty", "Red", "Silver", "Shy", "Proud",
}

var nouns = []string{
	"Dragon", "Phoenix", "Tiger", "Buffalo", "Crane", "Carp", "Turtle", "Lotus", "Lantern", "Monkey",
	"Rooster", "Elephant", "Bamboo", "River", "Kite", "Junk", "Gecko", "Orchid", "Heron", "Moon",
}

// GetRandomName returns a table name by combining an adjective with a noun
func GetRandomName(gen rng.Generator) string {
	return fmt.Sprintf("%s %s", adjectives[gen.Intn(len(adjectives))], nouns[gen.Intn(len(nouns))])
}
