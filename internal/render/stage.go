package render

import (
	"context"
	"errors"
	"image"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/voyagelog/internal/layout"
	"github.com/dmitrijs2005/voyagelog/internal/models"
)

var errReleased = errors.New("surface released")

// Stage mounts the pages of one plan off-screen. It holds a snapshot of the
// log taken when the export started.
type Stage struct {
	r     *Renderer
	state models.LogState
	plan  layout.Plan
	live  atomic.Int32
}

// Stage prepares s and its plan for capture.
func (r *Renderer) Stage(s models.LogState, plan layout.Plan) *Stage {
	return &Stage{r: r, state: s.Clone(), plan: plan}
}

// Plan is the plan the stage was built for.
func (st *Stage) Plan() layout.Plan { return st.plan }

// State is the log snapshot being exported.
func (st *Stage) State() models.LogState { return st.state }

// Live counts mounted surfaces that have not been released.
func (st *Stage) Live() int { return int(st.live.Load()) }

// Surface is one page mounted off-screen.
type Surface struct {
	stage *Stage
	page  layout.Page
	once  sync.Once
	done  atomic.Bool
}

// Mount places pg on a new surface and starts decoding its artwork.
func (st *Stage) Mount(ctx context.Context, pg layout.Page) (*Surface, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	st.preload(ctx)
	st.live.Add(1)
	return &Surface{stage: st, page: pg}, nil
}

func (st *Stage) preload(ctx context.Context) {
	a := st.r.assets
	a.Image(ctx, st.state.ParchmentAsset())
	a.Image(ctx, st.state.FrameAsset())
	a.Image(ctx, st.state.ShipAsset())
}

// Page is the page the surface shows.
func (s *Surface) Page() layout.Page { return s.page }

// Capture rasterizes the surface at the renderer's scale.
func (s *Surface) Capture(ctx context.Context) (image.Image, error) {
	if s.done.Load() {
		return nil, errReleased
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	st := s.stage
	img, err := st.r.Render(ctx, st.state, st.plan, s.page)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// Release unmounts the surface. Releasing twice is a no-op.
func (s *Surface) Release() {
	s.once.Do(func() {
		s.done.Store(true)
		s.stage.live.Add(-1)
	})
}
