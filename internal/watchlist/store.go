package watchlist

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"sentibot/internal/model"
)

// Store is the file-backed tracked-ticker list: a JSON object mapping
// uppercase symbols to a display name or null. Every write replaces the file.
type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Snapshot() ([]model.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tickers, err := s.load()
	if err != nil {
		return nil, err
	}

	companies := make([]model.Company, 0, len(tickers))
	for symbol, name := range tickers {
		c := model.Company{Symbol: symbol}
		if name != nil {
			c.Name = *name
		}
		companies = append(companies, c)
	}

	sort.Slice(companies, func(i, j int) bool {
		return companies[i].Symbol < companies[j].Symbol
	})

	return companies, nil
}

func (s *Store) Contains(symbol string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tickers, err := s.load()
	if err != nil {
		return false, err
	}

	_, ok := tickers[symbol]
	return ok, nil
}

func (s *Store) Add(symbol string, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tickers, err := s.load()
	if err != nil {
		return false, err
	}

	if _, ok := tickers[symbol]; ok {
		return false, nil
	}

	if name != "" {
		tickers[symbol] = &name
	} else {
		tickers[symbol] = nil
	}

	return true, s.save(tickers)
}

func (s *Store) Remove(symbol string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tickers, err := s.load()
	if err != nil {
		return false, err
	}

	if _, ok := tickers[symbol]; !ok {
		return false, nil
	}

	delete(tickers, symbol)
	return true, s.save(tickers)
}

func (s *Store) load() (map[string]*string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		name := "Apple Inc."
		return map[string]*string{"AAPL": &name}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading ticker list: %w", err)
	}

	var tickers map[string]*string
	if err := json.Unmarshal(data, &tickers); err != nil {
		return nil, fmt.Errorf("parsing ticker list: %w", err)
	}

	if tickers == nil {
		tickers = map[string]*string{}
	}

	return tickers, nil
}

func (s *Store) save(tickers map[string]*string) error {
	data, err := json.Marshal(tickers)
	if err != nil {
		return err
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing ticker list: %w", err)
	}

	return nil
}
