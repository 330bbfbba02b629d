// Package matvec implements the dense kernel-matrix-block times
// flux-column-vector product the convolution engine drives at every
// simulation step. It is the "external collaborator" spec.md treats as
// provided; this package supplies a concrete gonum-backed implementation,
// plus an optional row-block parallel path.
package matvec

import (
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// ParallelRowThreshold is the minimum number of result rows before
// Convolve splits the multiply across goroutines. Below this size, the
// overhead of fanning out outweighs any benefit, so it falls back to a
// single sequential MulVec — mirroring the SEQUEN_CODE fallback path the
// original implementation selected at compile time.
var ParallelRowThreshold = 4096

// MinRowsPerWorker bounds how finely a row range is split: a worker never
// gets fewer rows than this, which keeps the goroutine count sane for
// modestly sized problems that still exceed ParallelRowThreshold.
var MinRowsPerWorker = 512

// Convolve multiplies a kernel matrix block by a flux column vector and
// returns the result. Both must have matching inner dimension; callers
// (kernel/flux live-window extraction) are responsible for enforcing that
// the live windows agree before calling this.
func Convolve(kernelBlock *mat.Dense, fluxVector *mat.VecDense) *mat.VecDense {
	rows, _ := kernelBlock.Dims()
	out := mat.NewVecDense(rows, nil)
	if rows < ParallelRowThreshold {
		out.MulVec(kernelBlock, fluxVector)
		return out
	}
	convolveParallel(out, kernelBlock, fluxVector)
	return out
}

// convolveParallel splits the kernel's row range into disjoint blocks and
// computes each block's contribution to the result vector concurrently.
// No allocator state, cursor, or flag is touched here — the kernel view
// and flux vector are read-only for the duration of the multiply, so the
// workers share no mutable state beyond writing into disjoint segments of
// the single output vector, which they never overlap.
func convolveParallel(out *mat.VecDense, kernelBlock *mat.Dense, fluxVector *mat.VecDense) {
	rows, cols := kernelBlock.Dims()

	workers := rows / MinRowsPerWorker
	if workers < 1 {
		workers = 1
	}
	rowsPerWorker := rows / workers
	if rowsPerWorker == 0 {
		rowsPerWorker = rows
	}

	var g errgroup.Group
	for start := 0; start < rows; start += rowsPerWorker {
		start := start
		count := rowsPerWorker
		if start+count > rows {
			count = rows - start
		}
		g.Go(func() error {
			rowBlock := kernelBlock.Slice(start, start+count, 0, cols)
			segment := mat.NewVecDense(count, nil)
			segment.MulVec(rowBlock, fluxVector)
			for i := 0; i < count; i++ {
				out.SetVec(start+i, segment.AtVec(i))
			}
			return nil
		})
	}
	_ = g.Wait()
}
