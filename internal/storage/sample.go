package storage

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/san-kum/bounce/internal/entity"
	"github.com/san-kum/bounce/internal/sim"
)

// Sample is one entity's kinematic state at the end of a frame.
type Sample struct {
	Frame  int     `json:"frame"`
	Entity int     `json:"entity"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	VX     float64 `json:"vx"`
	VY     float64 `json:"vy"`
}

func (s Sample) record() []string {
	return []string{
		strconv.Itoa(s.Frame),
		strconv.Itoa(s.Entity),
		formatFloat(s.X),
		formatFloat(s.Y),
		formatFloat(s.VX),
		formatFloat(s.VY),
	}
}

func parseSample(rec []string) (Sample, error) {
	var s Sample
	var err error
	if s.Frame, err = strconv.Atoi(rec[0]); err != nil {
		return s, err
	}
	if s.Entity, err = strconv.Atoi(rec[1]); err != nil {
		return s, err
	}
	vals := make([]float64, 4)
	for i := range vals {
		if vals[i], err = strconv.ParseFloat(rec[i+2], 64); err != nil {
			return s, err
		}
	}
	s.X, s.Y, s.VX, s.VY = vals[0], vals[1], vals[2], vals[3]
	return s, nil
}

// Series returns the x and y positions of one entity in frame order.
func Series(samples []Sample, index int) (xs, ys []float64) {
	for _, s := range samples {
		if s.Entity != index {
			continue
		}
		xs = append(xs, s.X)
		ys = append(ys, s.Y)
	}
	return xs, ys
}

// Fingerprint hashes the samples of the last recorded frame. Two runs with
// the same fingerprint ended in the same state.
func Fingerprint(samples []Sample) string {
	if len(samples) == 0 {
		return ""
	}
	last := samples[len(samples)-1].Frame

	d := xxhash.New()
	var buf [8]byte
	for _, s := range samples {
		if s.Frame != last {
			continue
		}
		binary.LittleEndian.PutUint64(buf[:], uint64(s.Entity))
		d.Write(buf[:])
		for _, v := range [...]float64{s.X, s.Y, s.VX, s.VY} {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			d.Write(buf[:])
		}
	}
	return strconv.FormatUint(d.Sum64(), 16)
}

// Recorder is a sim.Observer that keeps one sample per active entity per
// frame.
type Recorder struct {
	samples []Sample
	frames  int
}

func NewRecorder() *Recorder {
	return &Recorder{samples: make([]Sample, 0)}
}

func (r *Recorder) OnFrame(stats sim.Stats, store entity.Store) {
	for i := range store {
		e := &store[i]
		if !e.Active {
			continue
		}
		r.samples = append(r.samples, Sample{
			Frame:  stats.Frame,
			Entity: i,
			X:      e.Position.X,
			Y:      e.Position.Y,
			VX:     e.Velocity.X,
			VY:     e.Velocity.Y,
		})
	}
	r.frames++
}

func (r *Recorder) Samples() []Sample { return r.samples }
func (r *Recorder) Frames() int       { return r.frames }

func (r *Recorder) Reset() {
	r.samples = r.samples[:0]
	r.frames = 0
}
