// Package bus describes audio channel layouts negotiated between the
// host and the processor.
package bus

// Direction represents the bus direction.
type Direction int32

const (
	// DirectionInput represents an input bus.
	DirectionInput Direction = 0
	// DirectionOutput represents an output bus.
	DirectionOutput Direction = 1
)

// Info describes one audio bus.
type Info struct {
	Direction    Direction
	ChannelCount int
	Name         string
	IsActive     bool
}

// Configuration is the set of buses a processor exposes.
type Configuration struct {
	buses []Info
}

// NewStereoConfiguration creates the standard stereo in/out layout.
func NewStereoConfiguration() *Configuration {
	return &Configuration{
		buses: []Info{
			{Direction: DirectionInput, ChannelCount: 2, Name: "Stereo In", IsActive: true},
			{Direction: DirectionOutput, ChannelCount: 2, Name: "Stereo Out", IsActive: true},
		},
	}
}

// NewMonoConfiguration creates a mono in/out layout.
func NewMonoConfiguration() *Configuration {
	return &Configuration{
		buses: []Info{
			{Direction: DirectionInput, ChannelCount: 1, Name: "Mono In", IsActive: true},
			{Direction: DirectionOutput, ChannelCount: 1, Name: "Mono Out", IsActive: true},
		},
	}
}

// BusCount returns the number of buses in a direction.
func (c *Configuration) BusCount(direction Direction) int {
	count := 0
	for _, b := range c.buses {
		if b.Direction == direction {
			count++
		}
	}
	return count
}

// BusInfo returns the nth bus in a direction, or nil.
func (c *Configuration) BusInfo(direction Direction, index int) *Info {
	n := 0
	for i := range c.buses {
		if c.buses[i].Direction == direction {
			if n == index {
				return &c.buses[i]
			}
			n++
		}
	}
	return nil
}

// ChannelCount returns the channel count of the main bus in a
// direction, or 0 if there is none.
func (c *Configuration) ChannelCount(direction Direction) int {
	if info := c.BusInfo(direction, 0); info != nil {
		return info.ChannelCount
	}
	return 0
}

// SupportsLayout reports whether the configuration matches the
// requested channel counts. Hosts probe this before activating.
func (c *Configuration) SupportsLayout(inputs, outputs int) bool {
	return c.ChannelCount(DirectionInput) == inputs &&
		c.ChannelCount(DirectionOutput) == outputs
}
