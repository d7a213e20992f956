// Command solverbench measures dispatch throughput of the batched solver
// operations against the registered backend. It times full dispatches
// (descriptor unpack, handle borrow, device copy, kernel loop), optionally
// across several concurrent streams.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"
	"unsafe"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/sync/errgroup"

	solver "github.com/cwbudde/algo-solver"
	"github.com/cwbudde/algo-solver/gpu"
)

type benchResult struct {
	lwork   int
	nsPerOp float64
}

func main() {
	var (
		opList   = flag.String("ops", "getrf,syevd,syevj,gesvd", "comma-separated operations")
		kindList = flag.String("kinds", "f32,f64,c64,c128", "comma-separated element kinds")
		sizeList = flag.String("sizes", "8,16,32", "comma-separated square matrix sizes")
		batch    = flag.Int("batch", 4, "instances per dispatch")
		iters    = flag.Int("iters", 20, "benchmark iterations")
		warmup   = flag.Int("warmup", 2, "warmup iterations")
		streams  = flag.Int("streams", 1, "concurrent streams per measurement")
		seed     = flag.Int64("seed", 1, "rng seed")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	gpu.RegisterMockBackend()
	s, err := solver.NewFromRegistered()
	if err != nil {
		logger.Error("no usable backend", "err", err)
		os.Exit(1)
	}
	defer s.Close()

	info := s.Backend().Info()
	fmt.Printf("backend: %s %s (%s)\n", info.Name, info.Version, info.Description)
	devices, err := s.Backend().Devices()
	if err != nil {
		logger.Error("device discovery failed", "err", err)
		os.Exit(1)
	}
	for i, d := range devices {
		fmt.Printf("device %d: %s (%s, %d MB)\n", i, d.Name, d.Vendor, d.MemoryMB)
	}
	fmt.Printf("batch=%d iters=%d warmup=%d streams=%d\n", *batch, *iters, *warmup, *streams)

	rnd := rand.New(rand.NewSource(*seed))

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"op", "kind", "shape", "batch", "lwork", "ns/op"})

	for _, op := range splitList(*opList) {
		for _, ks := range splitList(*kindList) {
			dt, kind, err := parseKind(ks)
			if err != nil {
				logger.Error("bad kind", "kind", ks, "err", err)
				continue
			}
			for _, n := range parseSizes(*sizeList) {
				if op == "syevj" && *batch > 1 && n > gpu.MaxBatchedJacobiDim {
					continue
				}
				res, err := runBench(s, op, dt, kind, n, *batch, *iters, *warmup, *streams, rnd)
				if err != nil {
					logger.Error("benchmark failed", "op", op, "kind", ks, "n", n, "err", err)
					continue
				}
				table.Append([]string{
					op, ks,
					fmt.Sprintf("%dx%d", n, n),
					strconv.Itoa(*batch),
					strconv.Itoa(res.lwork),
					fmt.Sprintf("%.0f", res.nsPerOp),
				})
			}
		}
	}
	table.Render()
}

func runBench(s *solver.Solver, op string, dt solver.DType, kind solver.ElementKind, n, batch, iters, warmup, streams int, rnd *rand.Rand) (benchResult, error) {
	var (
		lwork  int
		opaque []byte
		err    error
	)
	switch op {
	case "getrf":
		lwork, opaque, err = s.BuildGetrfDescriptor(dt, batch, n, n)
	case "syevd":
		lwork, opaque, err = s.BuildSyevdDescriptor(dt, true, batch, n)
	case "syevj":
		lwork, opaque, err = s.BuildSyevjDescriptor(dt, true, batch, n)
	case "gesvd":
		lwork, opaque, err = s.BuildGesvdDescriptor(dt, batch, n, n, true, false)
	default:
		return benchResult{}, fmt.Errorf("unknown op %q", op)
	}
	if err != nil {
		return benchResult{}, err
	}

	fn, ok := s.Registrations()["solver_"+op]
	if !ok {
		return benchResult{}, fmt.Errorf("no registration for %q", op)
	}

	backend := s.Backend()
	var (
		buffers []solver.Buffer
		opened  []solver.Stream
	)
	defer func() {
		for _, b := range buffers {
			b.Close()
		}
		for _, st := range opened {
			st.Close()
		}
	}()
	alloc := func(bytes int) (solver.Buffer, error) {
		b, err := backend.Malloc(bytes)
		if err == nil {
			buffers = append(buffers, b)
		}
		return b, err
	}

	ks, rs := kind.Size(), kind.Real().Size()
	host := randomHost(kind, batch*n*n, rnd)

	type lane struct {
		stream solver.Stream
		ptrs   []unsafe.Pointer
	}
	lanes := make([]lane, 0, streams)
	for i := 0; i < streams; i++ {
		st, err := backend.NewStream()
		if err != nil {
			return benchResult{}, err
		}
		opened = append(opened, st)

		in, err := alloc(batch * n * n * ks)
		if err != nil {
			return benchResult{}, err
		}
		if err := in.Upload(host); err != nil {
			return benchResult{}, err
		}
		out, err := alloc(batch * n * n * ks)
		if err != nil {
			return benchResult{}, err
		}
		work, err := alloc(lwork * ks)
		if err != nil {
			return benchResult{}, err
		}
		status, err := alloc(batch * 4)
		if err != nil {
			return benchResult{}, err
		}

		var ptrs []unsafe.Pointer
		switch op {
		case "getrf":
			ipiv, err := alloc(batch * n * 4)
			if err != nil {
				return benchResult{}, err
			}
			ptrs = []unsafe.Pointer{in.Ptr(), out.Ptr(), work.Ptr(), ipiv.Ptr(), status.Ptr()}
		case "syevd", "syevj":
			w, err := alloc(batch * n * rs)
			if err != nil {
				return benchResult{}, err
			}
			ptrs = []unsafe.Pointer{in.Ptr(), out.Ptr(), w.Ptr(), status.Ptr(), work.Ptr()}
		case "gesvd":
			sv, err := alloc(batch * n * rs)
			if err != nil {
				return benchResult{}, err
			}
			u, err := alloc(batch * n * n * ks)
			if err != nil {
				return benchResult{}, err
			}
			vt, err := alloc(batch * n * n * ks)
			if err != nil {
				return benchResult{}, err
			}
			ptrs = []unsafe.Pointer{in.Ptr(), out.Ptr(), sv.Ptr(), u.Ptr(), vt.Ptr(), status.Ptr(), work.Ptr()}
		}
		lanes = append(lanes, lane{stream: st, ptrs: ptrs})
	}

	run := func() error {
		g := new(errgroup.Group)
		for _, ln := range lanes {
			ln := ln
			g.Go(func() error {
				return fn(ln.stream, ln.ptrs, opaque)
			})
		}
		return g.Wait()
	}

	for i := 0; i < warmup; i++ {
		if err := run(); err != nil {
			return benchResult{}, err
		}
	}
	start := time.Now()
	for i := 0; i < iters; i++ {
		if err := run(); err != nil {
			return benchResult{}, err
		}
	}
	elapsed := time.Since(start)
	return benchResult{
		lwork:   lwork,
		nsPerOp: float64(elapsed.Nanoseconds()) / float64(iters*len(lanes)),
	}, nil
}

func randomHost(kind solver.ElementKind, elems int, rnd *rand.Rand) any {
	switch kind {
	case solver.KindF32:
		v := make([]float32, elems)
		for i := range v {
			v[i] = rnd.Float32()*2 - 1
		}
		return v
	case solver.KindF64:
		v := make([]float64, elems)
		for i := range v {
			v[i] = rnd.Float64()*2 - 1
		}
		return v
	case solver.KindC64:
		v := make([]complex64, elems)
		for i := range v {
			v[i] = complex(rnd.Float32()*2-1, rnd.Float32()*2-1)
		}
		return v
	default:
		v := make([]complex128, elems)
		for i := range v {
			v[i] = complex(rnd.Float64()*2-1, rnd.Float64()*2-1)
		}
		return v
	}
}

func parseKind(name string) (solver.DType, solver.ElementKind, error) {
	var dt solver.DType
	switch name {
	case "f32":
		dt = solver.DType{Kind: 'f', ItemSize: 4}
	case "f64":
		dt = solver.DType{Kind: 'f', ItemSize: 8}
	case "c64":
		dt = solver.DType{Kind: 'c', ItemSize: 8}
	case "c128":
		dt = solver.DType{Kind: 'c', ItemSize: 16}
	default:
		return dt, 0, fmt.Errorf("unknown kind %q", name)
	}
	kind, err := solver.ResolveElementKind(dt)
	return dt, kind, err
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseSizes(s string) []int {
	var out []int
	for _, part := range splitList(s) {
		n, err := strconv.Atoi(part)
		if err != nil || n <= 0 {
			continue
		}
		out = append(out, n)
	}
	return out
}
