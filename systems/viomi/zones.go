package viomi

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/go-home-io/viomise/plugins/common"
)

// CleanZone cleans rectangular zones, each zone is repeated the given number of times.
func (v *Vacuum) CleanZone(ctx context.Context, zones []common.Zone, repeats int) bool {
	const msg = "Unable to clean zone"

	v.rpc.Lock()
	defer v.rpc.Unlock()

	return v.tryChain(ctx, msg,
		rpcStep{method: "set_uploadmap", params: []interface{}{1}},
		rpcStep{method: "set_zone", params: zonePath(zones, repeats)},
		rpcStep{method: "set_mode", params: []interface{}{modeStandard, actionStart}},
	)
}

// Builds set_zone params: total count followed by a closed path per zone and repeat.
func zonePath(zones []common.Zone, repeats int) []interface{} {
	if repeats < 1 {
		repeats = 1
	}

	path := make([]interface{}, 1, 1+len(zones)*repeats)
	idx := 0
	for _, z := range zones {
		corners := []float64{z.X1, z.Y1, z.X1, z.Y2, z.X2, z.Y2, z.X2, z.Y1}
		for r := 0; r < repeats; r++ {
			parts := make([]string, 0, 2+len(corners))
			parts = append(parts, strconv.Itoa(idx), "0")
			for _, c := range corners {
				parts = append(parts, formatCoordinate(c))
			}
			path = append(path, strings.Join(parts, "_"))
			idx++
		}
	}

	path[0] = idx
	return path
}

// Formats coordinate the way firmware expects it: integral values keep ".0".
func formatCoordinate(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Goto cleans area around the coordinates.
func (v *Vacuum) Goto(ctx context.Context, x, y float64) bool {
	return v.pointClean(ctx, "Unable to goto", common.Point{X: x, Y: y})
}

// CleanPoint cleans area around the point.
func (v *Vacuum) CleanPoint(ctx context.Context, point common.Point) bool {
	return v.pointClean(ctx, "Unable to clean point", point)
}

func (v *Vacuum) pointClean(ctx context.Context, msg string, p common.Point) bool {
	v.rpc.Lock()
	defer v.rpc.Unlock()

	v.mu.Lock()
	v.lastCleanPoint = &p
	v.mu.Unlock()

	return v.tryChain(ctx, msg,
		rpcStep{method: "set_uploadmap", params: []interface{}{0}},
		rpcStep{method: "set_pointclean", params: []interface{}{actionStart, p.X, p.Y}},
	)
}

// CleanSegment cleans selected rooms.
func (v *Vacuum) CleanSegment(ctx context.Context, segments []int) bool {
	params := make([]interface{}, 0, 3+len(segments))
	params = append(params, 0, actionStart, len(segments))
	for _, s := range segments {
		params = append(params, s)
	}

	v.rpc.Lock()
	defer v.rpc.Unlock()

	return v.tryChain(ctx, "Unable to clean segments",
		rpcStep{method: "set_uploadmap", params: []interface{}{1}},
		rpcStep{method: "set_mode_withroom", params: params},
	)
}
