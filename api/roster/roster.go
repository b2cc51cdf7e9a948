/* roster.go
 * Contains the CSV-backed cache of allowed participants. Prediction event options
 * are seeded from this cache so option ids always come from the same id space as
 * result entries
 */

package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Participant is one allowed entrant, a student or a team
type Participant struct {
	ID   string
	Name string
	Kind string // "student" or "team"
}

// Cache holds the allowed-participants list in memory. It is an explicit object
// with a reload contract, callers share one instance by reference and decide when
// to refresh it, nothing is memoized at package load
type Cache struct {
	mu           sync.RWMutex
	path         string
	participants []Participant
	byID         map[string]Participant
}

// NewCache creates a cache for the given CSV path and performs the initial load.
// Preconditions: Receives the path of a CSV file with rows of the form id,name,kind
// Postconditions: Returns the loaded cache, or an error if the file cannot be read
func NewCache(path string) (*Cache, error) {
	c := &Cache{path: path}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload re-reads the CSV from disk and swaps the in-memory list. Malformed rows
// are skipped rather than failing the whole load, matching how historical roster
// files were maintained by hand.
// Postconditions: Replaces the cached participants and returns nil, or an error if the file cannot be opened
func (c *Cache) Reload() error {
	file, err := os.Open(c.path)
	if err != nil {
		return fmt.Errorf("failed to open roster file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	var participants []Participant
	byID := make(map[string]Participant)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read roster file: %w", err)
		}

		if len(record) != 3 {
			continue // Skip malformed rows
		}

		p := Participant{
			ID:   strings.TrimSpace(record[0]),
			Name: strings.TrimSpace(record[1]),
			Kind: strings.ToLower(strings.TrimSpace(record[2])),
		}
		if p.ID == "" || p.Name == "" {
			continue
		}
		if p.Kind != "student" && p.Kind != "team" {
			continue
		}

		participants = append(participants, p)
		byID[p.ID] = p
	}

	c.mu.Lock()
	c.participants = participants
	c.byID = byID
	c.mu.Unlock()

	return nil
}

// Lookup returns the participant for an id
func (c *Cache) Lookup(id string) (Participant, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.byID[id]
	return p, ok
}

// Len returns the number of cached participants
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.participants)
}

// ResolveNames matches admin-entered participant names to roster entries.
// Names are fuzzy matched case-insensitively, with an exact match preferred when
// several candidates rank.
// Preconditions: Receives a slice of names as entered by an admin
// Postconditions: Returns the matched participants in input order and a slice of
// the names that matched nothing
func (c *Cache) ResolveNames(names []string) ([]Participant, []string) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	lookup := make(map[string]Participant, len(c.participants))
	var namesLower []string
	for _, p := range c.participants {
		lower := strings.ToLower(p.Name)
		lookup[lower] = p
		namesLower = append(namesLower, lower)
	}

	var matched []Participant
	var invalid []string

	for _, name := range names {
		lowerName := strings.ToLower(strings.TrimSpace(name))
		ranks := fuzzy.RankFind(lowerName, namesLower)
		if len(ranks) == 0 {
			invalid = append(invalid, name)
			continue
		}

		// Prefer an exact match when several candidates rank
		target := ""
		for i := range ranks {
			if ranks[i].Target == lowerName {
				target = ranks[i].Target
			}
		}
		if target == "" {
			target = ranks[0].Target
		}

		matched = append(matched, lookup[target])
	}

	return matched, invalid
}
