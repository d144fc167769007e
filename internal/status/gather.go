package status

import (
	"context"

	"perc/internal/config"
	"perc/internal/logger"
)

// Mixer controls queried by the volume snippet.
const (
	ControlMaster    = "Master"
	ControlHeadphone = "Headphone"
)

// GatherMemory reads memory load and builds its snippet.
func GatherMemory(ctx context.Context, src Source, t config.Thresholds) (Snippet, error) {
	p, err := src.Memory(ctx)
	if err != nil {
		return Snippet{}, err
	}
	return Memory(int(p), t), nil
}

// GatherCPU samples processor load and builds its snippet.
func GatherCPU(ctx context.Context, src Source, t config.Thresholds) (Snippet, error) {
	p, err := src.CPU(ctx)
	if err != nil {
		return Snippet{}, err
	}
	return CPU(int(p), t), nil
}

// GatherDisk reads usage of the filesystem mounted at path and builds its snippet.
func GatherDisk(ctx context.Context, src Source, path string, t config.Thresholds) (Snippet, error) {
	u, err := src.Disk(ctx, path)
	if err != nil {
		return Snippet{}, err
	}
	return Disk(int(u.Percent), u.Free, t), nil
}

// GatherVolume reads the master control and the headphone switch.
// A machine without a headphone control reports the speaker.
func GatherVolume(ctx context.Context, src Source, t config.Thresholds) (Snippet, error) {
	master, err := src.Mixer(ctx, ControlMaster)
	if err != nil {
		return Snippet{}, err
	}

	headphone, err := src.Mixer(ctx, ControlHeadphone)
	if err != nil {
		logger.Debug("[DEBUG] No headphone control, assuming speaker: %v\n", err)
	}
	return Volume(master, err == nil && headphone.On, t), nil
}

// GatherBattery reads the first battery and builds its snippet.
func GatherBattery(ctx context.Context, src Source, t config.Thresholds) (Snippet, error) {
	b, err := src.Battery(ctx)
	if err != nil {
		return Snippet{}, err
	}
	return Battery(b, t), nil
}

// GatherKeyboard reads the active layout and builds its snippet.
func GatherKeyboard(ctx context.Context, src Source, home string) (Snippet, error) {
	l, err := src.Layout(ctx)
	if err != nil {
		return Snippet{}, err
	}
	return Keyboard(l, home), nil
}
