package cpu

import "github.com/born-ml/vqvae/internal/tensor"

// broadcastStrides computes strides for reading inShape as if it had
// outShape. Broadcast and padded dimensions get stride 0.
func broadcastStrides(inShape, outShape tensor.Shape) []int {
	outDim := len(outShape)
	offset := outDim - len(inShape)
	origStrides := inShape.ComputeStrides()

	strides := make([]int, outDim)
	for i := 0; i < outDim; i++ {
		inIdx := i - offset
		if inIdx >= 0 && inShape[inIdx] != 1 {
			strides[i] = origStrides[inIdx]
		}
	}
	return strides
}

// flatIndex maps a flat output index to a flat input index.
func flatIndex(outIdx int, outStrides, inStrides []int) int {
	flat := 0
	for i := range outStrides {
		coord := outIdx / outStrides[i]
		outIdx %= outStrides[i]
		flat += coord * inStrides[i]
	}
	return flat
}
