package ascent

import (
	"fmt"
	"os"
	"time"

	"github.com/soniakeys/meeus/julian"
)

// ExportConfig configures the streaming of per-tick states to a CSV file.
type ExportConfig struct {
	Filename  string
	OutputDir string
	Epoch     time.Time // Wall clock time of ignition; stamps the JD column.
	Timestamp bool      // Append a creation timestamp to the file name.
}

// IsUseless returns whether this configuration would output nothing.
func (c ExportConfig) IsUseless() bool {
	return c.Filename == "" && c.OutputDir == ""
}

func createStateCSVFile(conf ExportConfig) (*os.File, error) {
	filename := fmt.Sprintf("%s/flight-%s.csv", conf.OutputDir, conf.Filename)
	if conf.Timestamp {
		t := time.Now()
		filename = fmt.Sprintf("%s/flight-%s-%d-%02d-%02dT%02d.%02d.%02d.csv", conf.OutputDir, conf.Filename,
			t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second())
	}
	f, err := os.Create(filename)
	if err != nil {
		return nil, err
	}
	// Header
	f.WriteString(fmt.Sprintf(`# Creation date (UTC): %s
# Ignition epoch (UTC): %s
# Altitudes in m, velocities in m/s, Q in Pa, Δv in m/s
jd,t,phase,altitude,downrange,vVertical,vHorizontal,velocity,mach,q,gforce,fuel1,fuel2,dvSpent,dvRemaining,apogee,perigee,ecc
`, time.Now().UTC(), conf.Epoch.UTC()))
	return f, nil
}

// StreamStates drains the state channel into the configured CSV file. Run it
// in its own goroutine; it returns once the channel closes.
func StreamStates(conf ExportConfig, stateChan <-chan SimulationState) error {
	f, err := createStateCSVFile(conf)
	if err != nil {
		return err
	}
	defer f.Close()
	epoch := conf.Epoch.UTC()
	for state := range stateChan {
		jd := julian.TimeToJD(epoch.Add(time.Duration(state.MissionTime * float64(time.Second))))
		line := fmt.Sprintf("%.8f,%.2f,%s,%.1f,%.1f,%.2f,%.2f,%.2f,%.3f,%.1f,%.3f,%.1f,%.1f,%.1f,%.1f,%.1f,%.1f,%.5f\n",
			jd, state.MissionTime, state.Phase, state.Altitude, state.Downrange,
			state.VerticalVelocity, state.HorizontalVelocity, state.Velocity,
			state.Mach, state.DynamicPressure, state.GForce,
			state.Stage1Fuel, state.Stage2Fuel, state.DeltaVSpent, state.DeltaVRemaining,
			state.Orbit.Apogee, state.Orbit.Perigee, state.Orbit.Eccentricity)
		if _, err := f.WriteString(line); err != nil {
			return err
		}
	}
	return nil
}
