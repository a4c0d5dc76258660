package cpu

import (
	"runtime"

	syscpu "golang.org/x/sys/cpu"
)

// Features lists the SIMD extensions of the host that the BLAS kernels can
// use, e.g. "avx2" or "asimd". The list is empty on unknown architectures.
func (cpu *CPUBackend) Features() []string {
	var features []string
	add := func(name string, ok bool) {
		if ok {
			features = append(features, name)
		}
	}

	switch runtime.GOARCH {
	case "amd64", "386":
		add("sse2", syscpu.X86.HasSSE2)
		add("sse4.1", syscpu.X86.HasSSE41)
		add("avx", syscpu.X86.HasAVX)
		add("avx2", syscpu.X86.HasAVX2)
		add("fma", syscpu.X86.HasFMA)
		add("avx512f", syscpu.X86.HasAVX512F)
	case "arm64":
		add("asimd", syscpu.ARM64.HasASIMD)
		add("fphp", syscpu.ARM64.HasFPHP)
		add("sve", syscpu.ARM64.HasSVE)
	}
	return features
}
