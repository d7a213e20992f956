package algosolver

import "unsafe"

// DispatchFunc is the fixed native-call signature every dispatch entry
// point satisfies: an execution stream, the ordered raw device buffer
// addresses, and the opaque descriptor bytes produced at planning time.
type DispatchFunc func(stream Stream, buffers []unsafe.Pointer, opaque []byte) error

// Registrations returns the table binding each operation's stable name to
// its dispatch entry point. An external graph compiler consumes this table
// at load time to resolve symbolic custom-call nodes.
func (s *Solver) Registrations() map[string]DispatchFunc {
	return map[string]DispatchFunc{
		"solver_getrf": s.Getrf,
		"solver_syevd": s.Syevd,
		"solver_syevj": s.Syevj,
		"solver_gesvd": s.Gesvd,
	}
}

// PlannerRegistrations returns the planning entry points by name for host
// glue that binds them reflectively. The signatures are heterogeneous, so
// the values are untyped.
func (s *Solver) PlannerRegistrations() map[string]any {
	return map[string]any{
		"build_solver_getrf_descriptor": s.BuildGetrfDescriptor,
		"build_solver_syevd_descriptor": s.BuildSyevdDescriptor,
		"build_solver_syevj_descriptor": s.BuildSyevjDescriptor,
		"build_solver_gesvd_descriptor": s.BuildGesvdDescriptor,
	}
}
