package storage

import (
	"fmt"
	"time"

	"github.com/garyburd/redigo/redis"
	"github.com/vmihailenco/msgpack/v5"

	"gridbot/puzzle"
	"gridbot/solve"
)

// cacheTTL bounds how long a cached solution lives.  Daily and
// weekly puzzles rotate, so stale entries only waste space.
const cacheTTL = 30 * 24 * time.Hour

// cachedSolution is the wire form of a solved puzzle.  Only solved
// results are cached; failures and cancellations are re-run.
type cachedSolution struct {
	Values     [][]int  `msgpack:"values,omitempty"`
	Horizontal [][]bool `msgpack:"horizontal,omitempty"`
	Vertical   [][]bool `msgpack:"vertical,omitempty"`
	Height     int      `msgpack:"height"`
	Width      int      `msgpack:"width"`
}

func encodeSolution(sol *solve.Solution) ([]byte, error) {
	c := cachedSolution{}
	if sol.Grid != nil {
		c.Values = sol.Grid.Values()
		c.Height = sol.Grid.Height
		c.Width = sol.Grid.Width
	}
	if sol.Walls != nil {
		c.Horizontal = sol.Walls.Horizontal
		c.Vertical = sol.Walls.Vertical
		c.Height = sol.Walls.Height
		c.Width = sol.Walls.Width
	}
	return msgpack.Marshal(&c)
}

func decodeSolution(data []byte) (*solve.Solution, error) {
	var c cachedSolution
	if err := msgpack.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("corrupt cached solution: %w", err)
	}
	sol := &solve.Solution{Result: solve.Solved}
	if c.Values != nil {
		sol.Grid = puzzle.NewGridValues(c.Values)
	}
	if c.Horizontal != nil {
		sol.Walls = &puzzle.WallMap{
			Height:     c.Height,
			Width:      c.Width,
			Horizontal: c.Horizontal,
			Vertical:   c.Vertical,
		}
	}
	return sol, nil
}

// PutSolution caches a solved task.  Unsolved results and a
// disabled cache are silent no-ops.
func (s *Store) PutSolution(kind puzzle.Kind, raw string, sol *solve.Solution) error {
	if sol.Result != solve.Solved {
		return nil
	}
	data, err := encodeSolution(sol)
	if err != nil {
		return err
	}
	return s.rdExecute(func(conn redis.Conn) error {
		_, err := conn.Do("SETEX", TaskHash(kind, raw),
			int(cacheTTL/time.Second), data)
		return err
	})
}

// GetSolution looks a task up in the cache.  A miss, like a
// disabled cache, returns (nil, nil).
func (s *Store) GetSolution(kind puzzle.Kind, raw string) (*solve.Solution, error) {
	var data []byte
	err := s.rdExecute(func(conn redis.Conn) error {
		reply, err := redis.Bytes(conn.Do("GET", TaskHash(kind, raw)))
		if err == redis.ErrNil {
			return nil
		}
		if err != nil {
			return err
		}
		data = reply
		return nil
	})
	if err != nil || data == nil {
		return nil, err
	}
	return decodeSolution(data)
}
