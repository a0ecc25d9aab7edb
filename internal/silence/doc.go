// Package silence turns silencedetect diagnostic output into typed intervals
// and computes the complementary keep list the segment executor works from.
package silence
