// Package connectivity builds and analyzes the camera-pair correspondence
// graph of a multi-view reconstruction: how many feature tracks each pair
// of cameras jointly observes, which pairs survive a match-count threshold,
// and how the camera set decomposes into connected components.
package connectivity
