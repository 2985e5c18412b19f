// Package engine ranks catalog items against extracted request
// attributes. It embeds the request text once, embeds each candidate
// item (with a warm vector cache and a bounded worker pool), scores
// them by cosine similarity, and applies category, color and distance
// adjustments before thresholding and ranking.
package engine
