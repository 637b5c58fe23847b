// Package d3d9 adapts a live IDirect3DDevice9, through github.com/gonutz/d3d9,
// to renderer.Device. It only builds on Windows.
package d3d9
