package harness

import (
	"encoding/binary"
	"runtime"
	"strconv"

	"github.com/klauspost/cpuid"
	"github.com/minio/highwayhash"

	"github.com/zeebo/assume"
)

// fingerprintKey keys the environment hash. It is fixed so that fingerprints
// are comparable across runs and machines.
var fingerprintKey = [32]byte{
	'a', 's', 's', 'u', 'm', 'e', '/', 'h',
	'a', 'r', 'n', 'e', 's', 's', '/', 'e',
	'n', 'v', 0x01, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
}

// Env describes where a report was measured. Reports are only comparable
// when their fingerprints match.
type Env struct {
	GoVersion     string `json:"go_version"`
	GOOS          string `json:"goos"`
	GOARCH        string `json:"goarch"`
	Mode          string `json:"mode"`
	CPU           string `json:"cpu"`
	PhysicalCores int    `json:"physical_cores"`
	LogicalCores  int    `json:"logical_cores"`
	LZCNT         bool   `json:"lzcnt"`
	Fingerprint   string `json:"fingerprint"`
}

// CurrentEnv describes the running process.
func CurrentEnv() Env {
	env := Env{
		GoVersion:     runtime.Version(),
		GOOS:          runtime.GOOS,
		GOARCH:        runtime.GOARCH,
		Mode:          assume.Mode(),
		CPU:           cpuid.CPU.BrandName,
		PhysicalCores: cpuid.CPU.PhysicalCores,
		LogicalCores:  cpuid.CPU.LogicalCores,
		LZCNT:         cpuid.CPU.Features&cpuid.LZCNT != 0,
	}
	env.Fingerprint = env.fingerprint()
	return env
}

// fingerprint hashes every field but the fingerprint itself.
func (e Env) fingerprint() string {
	var buf []byte
	for _, field := range []string{e.GoVersion, e.GOOS, e.GOARCH, e.Mode, e.CPU} {
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(field)))
		buf = append(buf, field...)
	}
	buf = binary.BigEndian.AppendUint32(buf, uint32(e.PhysicalCores))
	buf = binary.BigEndian.AppendUint32(buf, uint32(e.LogicalCores))
	buf = strconv.AppendBool(buf, e.LZCNT)

	return strconv.FormatUint(highwayhash.Sum64(buf, fingerprintKey[:]), 16)
}
