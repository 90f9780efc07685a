// Suasor - Slope One Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suasor

package slopeone

// Matrix is the dense correlation table. Cell (i, j) holds the average
// rating difference between movie i and movie j for users who rated both,
// 0 when no such user exists, and 0 on the diagonal.
//
// During training and loading, disjoint row ranges are written by
// independent workers with no locking; the caller's completion barrier is
// the only synchronization. After the barrier the Matrix is immutable and
// safe for concurrent lookups.
type Matrix struct {
	index *IndexMap
	rows  [][]float64
}

// NewMatrix allocates a zero-filled square matrix sized to the index.
func NewMatrix(index *IndexMap) *Matrix {
	n := index.Len()
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
	}
	return &Matrix{index: index, rows: rows}
}

// Correlation returns the average rating difference between two movies.
// Unknown ids return the neutral value 0 rather than an error: a movie
// present in ratings but absent from the loaded matrix is ordinary
// catalog drift and must not destabilize serving.
func (m *Matrix) Correlation(sourceID, targetID int64) float64 {
	row, ok := m.index.Index(sourceID)
	if !ok {
		return 0
	}
	col, ok := m.index.Index(targetID)
	if !ok {
		return 0
	}
	return m.rows[row][col]
}

// SetCorrelation writes one cell, converting ids to indices. It returns
// false when either id is outside the mapped universe, which signals a
// mismatch between stored rows and the current index to loaders.
func (m *Matrix) SetCorrelation(sourceID, targetID int64, correlation float64) bool {
	row, ok := m.index.Index(sourceID)
	if !ok {
		return false
	}
	col, ok := m.index.Index(targetID)
	if !ok {
		return false
	}
	m.rows[row][col] = correlation
	return true
}

// MovieIDs returns the matrix's movie universe in index order. The
// returned slice is shared; callers must not modify it.
func (m *Matrix) MovieIDs() []int64 {
	return m.index.IDs()
}

// Size returns the number of movies on each axis.
func (m *Matrix) Size() int {
	return m.index.Len()
}

// Row returns the correlations for one source movie in column-index
// order, or false when the id is unknown. Stores use it to stream a
// trained matrix out in row-major order.
func (m *Matrix) Row(sourceID int64) ([]float64, bool) {
	row, ok := m.index.Index(sourceID)
	if !ok {
		return nil, false
	}
	return m.rows[row], true
}
