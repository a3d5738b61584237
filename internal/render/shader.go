package render

import (
	"io/fs"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/common"
	"github.com/vkngwrapper/core/core1_0"
)

const (
	VertexShaderPath   = "shaders/tri.vert.spv"
	FragmentShaderPath = "shaders/tri.frag.spv"
)

type shaderModuleCreator func(code []uint32) (core1_0.ShaderModule, common.VkResult, error)

// LoadShaderCode reads a SPIR-V binary and splits it into words.
func LoadShaderCode(fsys fs.FS, path string) ([]uint32, error) {
	b, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, ioFailed("read shader "+path, err)
	}

	if len(b)%4 != 0 {
		return nil, ioFailed("read shader "+path, errors.Newf("shader code size %d is not a multiple of 4", len(b)))
	}

	return bytesToBytecode(b), nil
}

func bytesToBytecode(b []byte) []uint32 {
	byteCode := make([]uint32, len(b)/4)
	for i := 0; i < len(byteCode); i++ {
		byteIndex := i * 4
		byteCode[i] = 0
		byteCode[i] |= uint32(b[byteIndex])
		byteCode[i] |= uint32(b[byteIndex+1]) << 8
		byteCode[i] |= uint32(b[byteIndex+2]) << 16
		byteCode[i] |= uint32(b[byteIndex+3]) << 24
	}

	return byteCode
}

// loadShaderModule never calls create for a binary that failed to load.
func loadShaderModule(fsys fs.FS, path string, create shaderModuleCreator) (core1_0.ShaderModule, error) {
	code, err := LoadShaderCode(fsys, path)
	if err != nil {
		return nil, err
	}

	module, res, err := create(code)
	if err != nil {
		return nil, creationFailed("create shader module "+path, res, err)
	}

	return module, nil
}

func (c *Context) createShaderModule(code []uint32) (core1_0.ShaderModule, common.VkResult, error) {
	return c.device.CreateShaderModule(nil, core1_0.ShaderModuleCreateInfo{
		Code: code,
	})
}
