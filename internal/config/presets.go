package config

// Built-in scenarios. "corridor" is a single robot threading a walled map
// with interior partitions; "meadow" is a six-agent flock crossing an open
// field with scattered obstacles.
var scenarios = map[string]func() *Scenario{
	"corridor": Default,
	"meadow":   meadow,
}

// GetScenario returns a fresh copy of a named scenario, or nil.
func GetScenario(name string) *Scenario {
	build, ok := scenarios[name]
	if !ok {
		return nil
	}
	return build()
}

// ListScenarios returns the built-in scenario names.
func ListScenarios() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	return names
}

func meadow() *Scenario {
	sc := Default()
	sc.Name = "meadow"
	sc.Obstacles = scatterObstacles()
	sc.Agents = []PoseConfig{
		{X: 1.0, Y: -1.0},
		{X: 1.0, Y: -3.0},
		{X: 1.0, Y: -5.0},
		{X: 3.0, Y: -1.0},
		{X: 3.0, Y: -3.0},
		{X: 3.0, Y: -5.0},
	}
	sc.Start = sc.Agents[0]
	return sc
}

// scatterObstacles is the sparse field shared by the flocking scenario.
func scatterObstacles() [][]float64 {
	return [][]float64{
		{12, -3},
		{13, -5},
		{12.5, -8},
		{14.5, -4},
		{21, -5},
		{22.5, -2},
		{23, -8},
		{24, -6},
	}
}

// corridorObstacles builds the 30x20 walled map: outer walls, a long middle
// partition with a gap, interior stubs, and the scatter points.
func corridorObstacles() [][]float64 {
	ob := make([][]float64, 0, 1024)
	add := func(x, y float64) {
		ob = append(ob, []float64{x, y})
	}

	for i := 0; i < 150; i++ {
		add(float64(i)/5.0, 0)
		add(float64(i)/5.0, -20)
	}
	for i := 0; i < 100; i++ {
		add(0, -float64(i)/5.0)
		add(30, -float64(i)/5.0)
	}
	for i := 0; i < 125; i++ {
		add(float64(i)/5.0, -10)
	}
	for i := 0; i < 10; i++ {
		add(28+float64(i)/5.0, -10)
		add(17, -(10 + float64(i)/5.0))
	}
	for i := 0; i < 25; i++ {
		add(25, -(8 + float64(i)/5.0))
		add(6, -(3 + float64(i)/5.0))
	}
	for i := 0; i < 40; i++ {
		add(28, -(8 + float64(i)/5.0))
	}
	for i := 0; i < 15; i++ {
		add(22+float64(i)/5.0, -13)
		add(8, -float64(i)/5.0)
		add(8, -(7 + float64(i)/5.0))
	}
	for i := 0; i < 30; i++ {
		add(22+float64(i)/5.0, -16)
		add(17, -(14 + float64(i)/5.0))
	}

	return append(ob, scatterObstacles()...)
}
