package poster

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"

	"weekendly/internal/capture"
	"weekendly/internal/model"
	"weekendly/internal/schedule"
)

var (
	brunch = model.Activity{ID: "brunch", Name: "Brunch", Category: model.CategoryFood, Duration: 2, Mood: model.MoodSocial, Icon: "🥞"}
	yoga   = model.Activity{ID: "yoga", Name: "Yoga", Category: model.CategoryFitness, Duration: 1, Mood: model.MoodRelaxing, Icon: "🧘"}
)

func sample() schedule.Snapshot {
	return schedule.Snapshot{
		Saturday: []model.Item{
			{ID: "1", Activity: brunch, StartHour: 9, Day: model.Saturday},
			{ID: "2", Activity: yoga, StartHour: 1, Day: model.Saturday},
		},
		Sunday: []model.Item{{ID: "3", Activity: yoga, StartHour: 8, Day: model.Sunday}},
	}
}

func TestBuildView(t *testing.T) {
	v := BuildView(sample(), 8, 23, "light")
	if len(v.Days) != 2 {
		t.Fatalf("days = %d", len(v.Days))
	}
	sat := v.Days[0]
	if len(sat.Rows) != 16 {
		t.Fatalf("rows = %d, want 16", len(sat.Rows))
	}
	// 9 AM holds brunch, 10 AM is covered by it.
	if r := sat.Rows[1]; len(r.Items) != 1 || r.Items[0].Range != "9:00 AM → 11:00 AM" || r.Span != 2 {
		t.Fatalf("9am row = %+v", r)
	}
	if !sat.Rows[2].Covered {
		t.Fatalf("10am should be covered")
	}
	if sat.Rows[3].Covered || len(sat.Rows[3].Items) != 0 {
		t.Fatalf("11am should be empty: %+v", sat.Rows[3])
	}
	if len(sat.Outside) != 1 || sat.Outside[0].Name != "Yoga" {
		t.Fatalf("1am yoga should be listed outside the grid: %+v", sat.Outside)
	}
	if v.Summary.TotalActivities != 3 || len(v.Moods) != 2 {
		t.Fatalf("summary = %+v moods = %+v", v.Summary, v.Moods)
	}
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, BuildView(sample(), 8, 23, "dark")); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`data-ready="true"`, `id="poster"`, "Brunch", "9:00 AM → 11:00 AM", "Total Hours Planned: 4", `data-theme="dark"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("html missing %q", want)
		}
	}
}

func fakePNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 3, 3))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestRenderUsesCaptureAndFlattens(t *testing.T) {
	var got capture.CaptureOptions
	e := NewExporter(Options{GridStart: 8, GridEnd: 23, Scale: 3}).WithCapture(
		func(_ context.Context, opts capture.CaptureOptions) ([]byte, error) {
			got = opts
			return fakePNG(t), nil
		})

	out, err := e.Render(context.Background(), schedule.Snapshot{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got.Scale != 3 || !strings.Contains(got.HTML, `data-ready="true"`) {
		t.Fatalf("capture options = %+v", got)
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, _, _, a := img.At(1, 1).RGBA(); a != 0xffff {
		t.Fatalf("poster should be opaque")
	}
}

func TestRenderPropagatesCaptureError(t *testing.T) {
	e := NewExporter(Options{}).WithCapture(func(context.Context, capture.CaptureOptions) ([]byte, error) {
		return nil, errors.New("no chrome")
	})
	if _, err := e.Render(context.Background(), sample()); err == nil {
		t.Fatalf("expected error")
	}
}
