package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// cfb8 implements CFB mode with 8-bit feedback, the stream cipher the
// Java Edition protocol layers over every byte after the encryption
// handshake. The standard library only ships full-block CFB.
type cfb8 struct {
	block     cipher.Block
	shift     []byte
	blockSize int
	decrypt   bool
}

// NewCFB8Encrypter returns a CFB-8 encrypting stream.
func NewCFB8Encrypter(block cipher.Block, iv []byte) cipher.Stream {
	return newCFB8(block, iv, false)
}

// NewCFB8Decrypter returns a CFB-8 decrypting stream.
func NewCFB8Decrypter(block cipher.Block, iv []byte) cipher.Stream {
	return newCFB8(block, iv, true)
}

func newCFB8(block cipher.Block, iv []byte, decrypt bool) cipher.Stream {
	if len(iv) != block.BlockSize() {
		panic(fmt.Sprintf("cfb8: IV length %d does not match block size %d", len(iv), block.BlockSize()))
	}
	shift := make([]byte, block.BlockSize())
	copy(shift, iv)
	return &cfb8{
		block:     block,
		shift:     shift,
		blockSize: block.BlockSize(),
		decrypt:   decrypt,
	}
}

func (c *cfb8) XORKeyStream(dst, src []byte) {
	keystream := make([]byte, c.blockSize)
	for i := range src {
		c.block.Encrypt(keystream, c.shift)
		in := src[i]
		out := in ^ keystream[0]
		dst[i] = out

		copy(c.shift, c.shift[1:])
		if c.decrypt {
			c.shift[c.blockSize-1] = in
		} else {
			c.shift[c.blockSize-1] = out
		}
	}
}

// NewAESStreams builds the encrypt/decrypt CFB-8 streams from a shared
// secret. Minecraft uses the secret as both AES key and IV.
func NewAESStreams(secret []byte) (encrypt, decrypt cipher.Stream, err error) {
	block, err := aes.NewCipher(secret)
	if err != nil {
		return nil, nil, fmt.Errorf("creating AES cipher: %w", err)
	}
	return NewCFB8Encrypter(block, secret), NewCFB8Decrypter(block, secret), nil
}
