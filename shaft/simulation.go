package shaft

// Simulation drops pieces into a shaft one at a time, cycling through the
// configured shapes and the wind schedule.
type Simulation struct {
	cycle  []Shape
	shaft  *Shaft
	wind   *Wind
	pieces int64
}

// NewSimulation validates cfg and returns a simulation with an empty shaft
// and a fresh cursor over the wind schedule.
func NewSimulation(cfg Config, wind *Wind) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Simulation{
		cycle: append([]Shape(nil), cfg.PieceCycle...),
		shaft: NewShaft(cfg),
		wind:  wind.Restart(),
	}, nil
}

// Step drops the next piece and returns it where it came to rest.
func (s *Simulation) Step() Piece {
	shape := s.cycle[s.pieces%int64(len(s.cycle))]
	p := s.shaft.Drop(shape, s.wind)
	s.pieces++
	return p
}

// Run drops n pieces.
func (s *Simulation) Run(n int64) {
	for range n {
		s.Step()
	}
}

// Pieces returns the number of pieces dropped so far.
func (s *Simulation) Pieces() int64 {
	return s.pieces
}

// Height returns the current stack height.
func (s *Simulation) Height() int64 {
	return int64(s.shaft.Height())
}

// Shaft returns the simulated shaft.
func (s *Simulation) Shaft() *Shaft {
	return s.shaft
}

// Wind returns the simulation's wind cursor.
func (s *Simulation) Wind() *Wind {
	return s.wind
}
