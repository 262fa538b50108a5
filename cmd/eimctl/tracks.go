package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2"

	"github.com/eim-dev/eim-client/internal/errors"
	"github.com/eim-dev/eim-client/pkg/client"
	"github.com/eim-dev/eim-client/pkg/model"
	"github.com/eim-dev/eim-client/pkg/protocol"
)

func tracksCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "tracks",
		Short: "List and edit tracks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output, outputTable, outputJSON, outputYAML); err != nil {
				return err
			}
			return withClient(cmd.Context(), a, func(ctx context.Context, c *client.Client) error {
				if err := loadTracks(ctx, c, a.cfg.RequestTimeout, true); err != nil {
					return err
				}
				if output != outputTable {
					return printValue(output, c.Store().Snapshot())
				}
				printTracks(c.Store())
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format: table, json or yaml")

	cmd.AddCommand(
		trackVolumeCmd(a),
		trackPanCmd(a),
		trackMuteCmd(a),
		trackCreateCmd(a),
		trackNoteCmd(a),
	)
	return cmd
}

func trackVolumeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "volume INDEX VALUE",
		Short: "Set a track volume on the 0-140 slider scale",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			value, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return errors.New("E160").WithDetail(fmt.Sprintf("volume %q is not a number", args[1]))
			}
			return withClient(cmd.Context(), a, func(ctx context.Context, c *client.Client) error {
				if err := loadTracks(ctx, c, a.cfg.RequestTimeout, false); err != nil {
					return err
				}
				if err := c.SetVolume(ctx, index, value); err != nil {
					return err
				}
				t, _ := c.Store().TrackAt(index)
				success("%s volume %.0f (%s)", trackLabel(t), t.DisplayedVolume(), formatDecibels(t.Volume))
				return nil
			})
		},
	}
}

func trackPanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pan INDEX VALUE",
		Short: "Set a track pan between -100 and 100",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			pan, err := strconv.Atoi(args[1])
			if err != nil {
				return errors.New("E160").WithDetail(fmt.Sprintf("pan %q is not an integer", args[1]))
			}
			return withClient(cmd.Context(), a, func(ctx context.Context, c *client.Client) error {
				if err := c.SetTrackPan(ctx, int32(index), pan); err != nil {
					return err
				}
				success("track %d pan %d", index, pan)
				return nil
			})
		},
	}
}

func trackMuteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mute INDEX",
		Short: "Toggle a track's mute state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return withClient(cmd.Context(), a, func(ctx context.Context, c *client.Client) error {
				if err := loadTracks(ctx, c, a.cfg.RequestTimeout, false); err != nil {
					return err
				}
				if err := c.ToggleMute(ctx, index); err != nil {
					return err
				}
				t, _ := c.Store().TrackAt(index)
				if t.Muted {
					success("%s muted", trackLabel(t))
				} else {
					success("%s unmuted", trackLabel(t))
				}
				return nil
			})
		},
	}
}

func trackCreateCmd(a *app) *cobra.Command {
	var (
		name   string
		color  string
		index  int
		plugin string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a track",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts client.CreateTrackOptions
			if name != "" {
				opts.Name = protocol.SomeString(name)
			}
			if plugin != "" {
				opts.PluginData = protocol.SomeString(plugin)
			}
			if color != "" {
				rgb, err := model.ParseRGB(color)
				if err != nil {
					return errors.New("E160").WithDetail(err.Error())
				}
				opts.Color = protocol.SomeInt32(int32(rgb))
			}
			if cmd.Flags().Changed("index") {
				if index < 0 || index > math.MaxInt32 {
					return errors.New("E160").WithDetail(fmt.Sprintf("index %d out of range", index))
				}
				opts.Index = protocol.SomeInt32(int32(index))
			}
			return withClient(cmd.Context(), a, func(ctx context.Context, c *client.Client) error {
				if err := c.CreateTrack(ctx, opts); err != nil {
					return err
				}
				success("track created")
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Track name")
	cmd.Flags().StringVar(&color, "color", "", "Track color as #RRGGBB")
	cmd.Flags().IntVarP(&index, "index", "i", 0, "Insert position (default append)")
	cmd.Flags().StringVarP(&plugin, "plugin", "p", "", "Instrument plugin identifier")

	return cmd
}

func trackNoteCmd(a *app) *cobra.Command {
	var (
		velocity uint8
		channel  uint8
		length   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "note INDEX KEY",
		Short: "Play one MIDI note on a track",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			if index > math.MaxUint8 {
				return errors.New("E160").WithDetail(fmt.Sprintf("track index %d does not fit a MIDI message", index))
			}
			key, err := strconv.ParseUint(args[1], 10, 7)
			if err != nil {
				return errors.New("E160").WithDetail(fmt.Sprintf("key %q is not a MIDI key 0-127", args[1]))
			}
			if channel > 15 || velocity > 127 {
				return errors.New("E160").WithDetail("channel must be 0-15 and velocity 0-127")
			}
			return withClient(cmd.Context(), a, func(ctx context.Context, c *client.Client) error {
				if err := c.SendMidi(ctx, uint8(index), midi.NoteOn(channel, uint8(key), velocity)); err != nil {
					return err
				}
				select {
				case <-time.After(length):
				case <-ctx.Done():
				}
				// Always release the note, even when interrupted.
				if err := c.SendMidi(context.Background(), uint8(index), midi.NoteOff(channel, uint8(key))); err != nil {
					return err
				}
				success("played key %d on track %d", key, index)
				return nil
			})
		},
	}

	cmd.Flags().Uint8VarP(&velocity, "velocity", "v", 100, "Note velocity 0-127")
	cmd.Flags().Uint8Var(&channel, "channel", 0, "MIDI channel 0-15")
	cmd.Flags().DurationVarP(&length, "length", "l", 500*time.Millisecond, "How long to hold the note")

	return cmd
}

// withClient connects, runs fn, and closes the connection.
func withClient(ctx context.Context, a *app, fn func(context.Context, *client.Client) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	c, err := a.connect(ctx, nil)
	if err != nil {
		return err
	}
	defer c.Close()
	return fn(ctx, c)
}

// loadTracks asks for the track list and waits until it has arrived. With
// mixer set it also waits for the mixer strips.
func loadTracks(ctx context.Context, c *client.Client, timeout time.Duration, mixer bool) error {
	tracks := awaitPacket(c, protocol.ClientboundTrackInfo, timeout)
	if err := c.Refresh(ctx); err != nil {
		return err
	}
	if err := tracks(ctx); err != nil {
		return err
	}
	if !mixer {
		return nil
	}
	strips := awaitPacket(c, protocol.ClientboundTrackMixerInfo, timeout)
	if err := c.GetTracksMixerInfo(ctx); err != nil {
		return err
	}
	return strips(ctx)
}

// awaitPacket subscribes to op and returns a function that blocks until
// the next packet of that kind has been applied. Subscribe before sending
// the command that triggers it.
func awaitPacket(c *client.Client, op protocol.Clientbound, timeout time.Duration) func(context.Context) error {
	seen := make(chan struct{}, 1)
	sub := c.Watch(op, func() {
		select {
		case seen <- struct{}{}:
		default:
		}
	})
	return func(ctx context.Context) error {
		defer sub.Close()
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		select {
		case <-seen:
			return nil
		case <-c.Done():
			return c.Err()
		case <-timer.C:
			return fmt.Errorf("%w: waiting for %s", client.ErrTimeout, op)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func printTracks(s *model.Store) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tID\tNAME\tCOLOR\tVOLUME\tDB\tMUTE\tSOLO\tPAN\tPLUGINS")
	for i, t := range s.Tracks() {
		pan, plugins := "-", "-"
		if m, ok := s.Mixer(t.ID); ok {
			pan = strconv.Itoa(int(m.Pan))
			plugins = strconv.Itoa(len(m.Plugins))
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.0f\t%s\t%s\t%s\t%s\t%s\n",
			i, t.ID, t.Name, t.Color.Hex(), t.DisplayedVolume(), formatDecibels(t.Volume),
			yesNo(t.Muted), yesNo(t.Solo), pan, plugins)
	}
	tw.Flush()
}

func parseIndex(raw string) (int, error) {
	i, err := strconv.Atoi(raw)
	if err != nil || i < 0 || i > math.MaxInt32 {
		return 0, errors.New("E160").WithDetail(fmt.Sprintf("track index %q is not a non-negative integer", raw))
	}
	return i, nil
}

func trackLabel(t model.Track) string {
	if t.Name == "" {
		return "track " + t.ID.String()
	}
	return strconv.Quote(t.Name)
}

func formatDecibels(v float32) string {
	db := model.VolumeDecibels(v)
	if math.IsInf(db, -1) {
		return "-inf dB"
	}
	return fmt.Sprintf("%+.1f dB", db)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
