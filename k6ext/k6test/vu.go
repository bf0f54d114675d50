// Package k6test provides a mock k6 VU for unit tests of packages that
// read options off a goja.Value or reach into the VU via context.
package k6test

import (
	"context"
	"testing"

	"github.com/browsercore/xk6-frame/k6ext"

	k6common "go.k6.io/k6/js/common"
	k6eventloop "go.k6.io/k6/js/eventloop"
	k6modulestest "go.k6.io/k6/js/modulestest"
	k6lib "go.k6.io/k6/lib"
	k6metrics "go.k6.io/k6/metrics"

	"github.com/dop251/goja"
	"github.com/oxtoacart/bpool"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v3"
)

// VU is a mock k6 VU instance.
type VU struct {
	*k6modulestest.VU
	Loop *k6eventloop.EventLoop
}

// ToGojaValue converts i into a goja.Value using the VU's runtime.
func (v *VU) ToGojaValue(i interface{}) goja.Value { return v.Runtime().ToValue(i) }

// NewVU returns a mock VU with its context already carrying itself, so
// k6ext.GetVU/k6ext.Runtime work against it.
func NewVU(tb testing.TB) *VU {
	tb.Helper()

	rt := goja.New()
	rt.SetFieldNameMapper(k6common.FieldNameMapper{})

	samples := make(chan k6metrics.SampleContainer, 1000)

	root, err := k6lib.NewGroup("", nil)
	require.NoError(tb, err)

	state := &k6lib.State{
		Options: k6lib.Options{
			MaxRedirects: null.IntFrom(10),
			UserAgent:    null.StringFrom("TestUserAgent"),
			Throw:        null.BoolFrom(true),
			SystemTags:   &k6metrics.DefaultSystemTagSet,
			Batch:        null.IntFrom(20),
			BatchPerHost: null.IntFrom(20),
		},
		Logger:         logrus.StandardLogger(),
		Group:          root,
		BPool:          bpool.NewBufferPool(1),
		Samples:        samples,
		Tags:           k6lib.NewTagMap(map[string]string{"group": root.Path}),
		BuiltinMetrics: k6metrics.RegisterBuiltinMetrics(k6metrics.NewRegistry()),
	}
	vu := &VU{
		VU: &k6modulestest.VU{
			RuntimeField: rt,
			InitEnvField: &k6common.InitEnvironment{
				Registry: k6metrics.NewRegistry(),
			},
			StateField: state,
		},
	}
	ctx := k6ext.WithVU(context.Background(), vu)
	vu.CtxField = ctx

	loop := k6eventloop.New(vu)
	vu.RegisterCallbackField = loop.RegisterCallback
	vu.Loop = loop

	return vu
}
