package profiling

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/getmentor/persons-api/config"
	"github.com/getmentor/persons-api/pkg/logger"
	"github.com/grafana/pyroscope-go"
	"go.uber.org/zap"
)

const (
	defaultAppName        = "persons-api"
	defaultUploadInterval = 15 * time.Second
)

// sampleTypes maps O11Y_PROFILING_SAMPLE_TYPES entries to pyroscope profile types
var sampleTypes = map[string][]pyroscope.ProfileType{
	"cpu":           {pyroscope.ProfileCPU},
	"alloc_space":   {pyroscope.ProfileAllocSpace},
	"alloc_objects": {pyroscope.ProfileAllocObjects},
	"inuse_space":   {pyroscope.ProfileInuseSpace},
	"inuse_objects": {pyroscope.ProfileInuseObjects},
	"goroutines":    {pyroscope.ProfileGoroutines},
	"mutex":         {pyroscope.ProfileMutexCount, pyroscope.ProfileMutexDuration},
	"block":         {pyroscope.ProfileBlockCount, pyroscope.ProfileBlockDuration},
}

// defaultSampleTypes is used when no sample types are configured
const defaultSampleTypes = "cpu,alloc_space,alloc_objects,goroutines"

// InitProfiler starts continuous profiling when enabled. The returned stop
// function is always safe to call.
func InitProfiler(cfg config.ProfilingConfig, svc config.ObservabilityConfig, environment string) (func(), error) {
	if !cfg.Enabled {
		logger.Info("Continuous profiling disabled")
		return func() {}, nil
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("profiling endpoint is required when profiling is enabled")
	}

	types, err := parseSampleTypes(cfg.SampleTypes)
	if err != nil {
		return nil, err
	}

	interval := time.Duration(cfg.UploadIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = defaultUploadInterval
	}

	appName := strings.TrimSpace(cfg.AppName)
	if appName == "" {
		appName = defaultAppName
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: appName,
		ServerAddress:   endpoint,
		UploadRate:      interval,
		ProfileTypes:    types,
		Tags:            serviceTags(svc, environment),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start profiler: %w", err)
	}

	logger.Info("Continuous profiling initialized",
		zap.String("application_name", appName),
		zap.String("endpoint", endpoint),
		zap.Int("profile_types", len(types)),
		zap.Duration("upload_interval", interval),
	)

	return func() {
		if stopErr := profiler.Stop(); stopErr != nil {
			logger.Error("Failed to stop profiler", zap.Error(stopErr))
		}
	}, nil
}

// WithRoute runs fn with a "route" profiling label so samples can be split by
// endpoint. Labels are goroutine-local and cost nothing when no profiler runs.
func WithRoute(ctx context.Context, route string, fn func(context.Context)) {
	pyroscope.TagWrapper(ctx, pyroscope.Labels("route", route), fn)
}

func parseSampleTypes(value string) ([]pyroscope.ProfileType, error) {
	if strings.TrimSpace(value) == "" {
		value = defaultSampleTypes
	}

	var types []pyroscope.ProfileType
	seen := make(map[pyroscope.ProfileType]bool)

	for _, raw := range strings.Split(value, ",") {
		key := strings.ToLower(strings.TrimSpace(raw))
		if key == "" {
			continue
		}
		mapped, ok := sampleTypes[key]
		if !ok {
			return nil, fmt.Errorf("unsupported O11Y_PROFILING_SAMPLE_TYPES value: %q", key)
		}
		for _, t := range mapped {
			if !seen[t] {
				seen[t] = true
				types = append(types, t)
			}
		}
	}

	if len(types) == 0 {
		return parseSampleTypes(defaultSampleTypes)
	}
	return types, nil
}

// serviceTags are static labels attached to every uploaded profile. Empty
// values are left out.
func serviceTags(svc config.ObservabilityConfig, environment string) map[string]string {
	tags := map[string]string{}
	for key, value := range map[string]string{
		"service_name":      svc.ServiceName,
		"service_namespace": svc.ServiceNamespace,
		"service_version":   svc.ServiceVersion,
		"instance":          svc.ServiceInstanceID,
		"environment":       environment,
	} {
		if value != "" {
			tags[key] = value
		}
	}
	return tags
}
