package scheduler_test

import (
	"context"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/libpack/internal/core/domain"
	"go.trai.ch/libpack/internal/core/ports"
	"go.trai.ch/libpack/internal/core/ports/mocks"
	"go.trai.ch/libpack/internal/engine/pipeline"
	"go.trai.ch/libpack/internal/engine/scheduler"
	"go.trai.ch/libpack/internal/engine/stages"
	"go.uber.org/mock/gomock"
)

// eventLog records collaborator calls in the order they happen.
type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (l *eventLog) add(event string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
}

func (l *eventLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.events)
}

// compileScheduler runs the real compilation stage with recording collaborators.
func (f *fixture) compileScheduler(t *testing.T, log *eventLog) *scheduler.Scheduler {
	t.Helper()
	ctrl := gomock.NewController(t)

	compiler := mocks.NewMockSourceCompiler(ctrl)
	compiler.EXPECT().Compile(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req *ports.CompileRequest) error {
			log.add("compile " + req.Node.Name().String())
			return nil
		}).AnyTimes()

	stylesheets := mocks.NewMockStylesheetProcessorFactory(ctrl)
	stylesheets.EXPECT().New(gomock.Any(), gomock.Any()).Return(mocks.NewMockStylesheetProcessor(ctrl), nil).AnyTimes()

	shimProcessor := mocks.NewMockShimProcessor(ctrl)
	shimProcessor.EXPECT().ProcessAll(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, ports.ShimRequest) error {
			log.add("shim-all")
			return nil
		}).AnyTimes()

	p := pipeline.New(f.progress, f.tracer, f.logger, stages.NewCompile(compiler, stylesheets, shimProcessor))
	return scheduler.NewScheduler(p, f.hasher, f.store, f.verifier, f.progress, f.tracer, f.logger)
}

func shimNode(name string, secondary bool, deps ...string) *domain.NodeData {
	data := nodeData(name, secondary, deps...)
	data.TsConfig.Options.EnableShim = true
	return data
}

func TestScheduler_Run_ShimBeforeSecondaries(t *testing.T) {
	t.Run("secondary declared first", func(t *testing.T) {
		f := newFixture(t)
		log := &eventLog{}
		g := buildGraph(t, shimNode("lib/sub", true), shimNode("lib", false))

		err := f.compileScheduler(t, log).Run(context.Background(), g, domain.NewNodeCache(), scheduler.Options{Parallelism: 1})
		require.NoError(t, err)

		assert.Equal(t, []string{"shim-all", "compile lib", "compile lib/sub"}, log.all())
	})

	t.Run("parallel", func(t *testing.T) {
		f := newFixture(t)
		log := &eventLog{}
		g := buildGraph(t,
			shimNode("lib/a", true),
			shimNode("lib/b", true),
			shimNode("lib/c", true),
			shimNode("lib", false),
		)

		err := f.compileScheduler(t, log).Run(context.Background(), g, domain.NewNodeCache(), scheduler.Options{Parallelism: 4})
		require.NoError(t, err)

		events := log.all()
		require.Len(t, events, 5)
		assert.Equal(t, []string{"shim-all", "compile lib"}, events[:2])
		assert.ElementsMatch(t, []string{"compile lib/a", "compile lib/b", "compile lib/c"}, events[2:])
	})

	t.Run("target pulls in the primary", func(t *testing.T) {
		f := newFixture(t)
		log := &eventLog{}
		g := buildGraph(t, shimNode("lib", false), shimNode("lib/sub", true), shimNode("lib/other", true))

		err := f.compileScheduler(t, log).Run(context.Background(), g, domain.NewNodeCache(),
			scheduler.Options{Targets: []string{"lib/sub"}})
		require.NoError(t, err)

		assert.Equal(t, []string{"shim-all", "compile lib", "compile lib/sub"}, log.all())
	})

	t.Run("primary depending on the secondary", func(t *testing.T) {
		f := newFixture(t)
		log := &eventLog{}
		g := buildGraph(t, shimNode("lib", false, "lib/core"), shimNode("lib/core", true))

		err := f.compileScheduler(t, log).Run(context.Background(), g, domain.NewNodeCache(), scheduler.Options{Parallelism: 2})
		require.NoError(t, err)

		assert.Equal(t, []string{"compile lib/core", "shim-all", "compile lib"}, log.all())
	})

	t.Run("shim disabled keeps declared order", func(t *testing.T) {
		f := newFixture(t)
		log := &eventLog{}
		g := buildGraph(t, nodeData("lib/sub", true), nodeData("lib", false))

		err := f.compileScheduler(t, log).Run(context.Background(), g, domain.NewNodeCache(), scheduler.Options{Parallelism: 1})
		require.NoError(t, err)

		assert.Equal(t, []string{"compile lib/sub", "compile lib"}, log.all())
	})
}
