package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/jonmartinstorm/statsnusern/internal/config"
	"github.com/jonmartinstorm/statsnusern/internal/mocks"
	"github.com/jonmartinstorm/statsnusern/internal/models"
	"github.com/jonmartinstorm/statsnusern/internal/runner"
	"github.com/stretchr/testify/mock"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("RunAppSafe", func() {
	var (
		ctx       context.Context
		cfg       config.Config
		deps      *mocks.MockRunnerDeps
		collector *mocks.MockCollector
		renderer  *mocks.MockRenderer
	)

	BeforeEach(func() {
		ctx = context.Background()
		cfg = config.Config{
			Token:         "123",
			Username:      "ola",
			ExcludedRepos: []string{"ola/a"},
			ExcludeForked: true,
		}

		deps = mocks.NewMockRunnerDeps(GinkgoT())
		collector = mocks.NewMockCollector(GinkgoT())
		renderer = mocks.NewMockRenderer(GinkgoT())
	})

	It("returnerer nil når Run lykkes", func() {
		report := models.NewReport("ola")

		deps.EXPECT().NewCollector(cfg).Return(collector, nil)
		deps.EXPECT().NewRenderer(cfg).Return(renderer)
		collector.EXPECT().CollectAll(mock.Anything).Return(report, nil)
		renderer.EXPECT().Render(report).Return(nil)

		err := runner.RunAppSafe(ctx, cfg, deps)
		Expect(err).To(BeNil())
	})

	It("returnerer feil når innsamlingen feiler", func() {
		deps.EXPECT().NewCollector(cfg).Return(collector, nil)
		deps.EXPECT().NewRenderer(cfg).Return(renderer)
		collector.EXPECT().CollectAll(mock.Anything).Return(nil, errors.New("API fail"))

		err := runner.RunAppSafe(ctx, cfg, deps)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("API fail"))
	})

	It("returnerer feil når oppsettet feiler", func() {
		deps.EXPECT().NewCollector(cfg).Return(nil, errors.New("cache nede"))

		err := runner.RunApp(ctx, cfg, deps)
		Expect(err).To(MatchError(ContainSubstring("cache nede")))
	})

	It("gjør panikk om til en feil", func() {
		deps.EXPECT().NewCollector(cfg).Return(collector, nil)
		deps.EXPECT().NewRenderer(cfg).Return(renderer)
		collector.EXPECT().CollectAll(mock.Anything).RunAndReturn(func(context.Context) (*models.Report, error) {
			panic("boom")
		})

		err := runner.RunAppSafe(ctx, cfg, deps)
		Expect(err).To(MatchError(ContainSubstring("boom")))
	})
})

var _ = Describe("RealDeps", func() {
	It("oppretter cache-katalogen og bygger en renderer", func() {
		dir := GinkgoT().TempDir()
		cfg := config.Defaults()
		cfg.Token = "t"
		cfg.Username = "ola"
		cfg.CacheDir = filepath.Join(dir, "cache")
		cfg.OutputDir = filepath.Join(dir, "out")

		collector, err := runner.RealDeps{}.NewCollector(cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(collector).NotTo(BeNil())
		Expect(cfg.CacheDir).To(BeADirectory())

		Expect(runner.RealDeps{}.NewRenderer(cfg)).NotTo(BeNil())
	})

	It("feiler når cache-katalogen ikke kan opprettes", func() {
		file := filepath.Join(GinkgoT().TempDir(), "fil")
		Expect(os.WriteFile(file, []byte("x"), 0644)).To(Succeed())

		cfg := config.Defaults()
		cfg.CacheDir = filepath.Join(file, "cache")

		_, err := runner.RealDeps{}.NewCollector(cfg)
		Expect(err).To(MatchError(ContainSubstring("kunne ikke opprette cache")))
	})
})
