package miio

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5" // nolint:gosec
	"encoding/binary"
	"encoding/hex"
	"errors"
)

const (
	headerSize  = 32
	packetMagic = 0x2131
)

// Packet header as sent over the wire.
type header struct {
	Length   uint16
	Unknown  uint32
	DeviceID uint32
	Stamp    uint32
	Checksum [16]byte
}

// Token derived encryption material.
type cryptor struct {
	token []byte
	key   []byte
	iv    []byte
}

// Parses hex token and derives AES key and IV out of it.
func newCryptor(token string) (*cryptor, error) {
	raw, err := hex.DecodeString(token)
	if err != nil || len(raw) != 16 {
		return nil, &ErrInvalidToken{}
	}

	key := md5Bytes(raw)
	iv := md5Bytes(append(append([]byte{}, key...), raw...))
	return &cryptor{
		token: raw,
		key:   key,
		iv:    iv,
	}, nil
}

func md5Bytes(data []byte) []byte {
	sum := md5.Sum(data) // nolint:gosec
	return sum[:]
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	pad := blockSize - (len(data) % blockSize)
	padding := bytes.Repeat([]byte{byte(pad)}, pad)
	return append(data, padding...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, errors.New("invalid padding size")
	}
	pad := int(data[len(data)-1])
	if pad == 0 || pad > blockSize || pad > len(data) {
		return nil, errors.New("invalid padding")
	}
	for i := 0; i < pad; i++ {
		if data[len(data)-1-i] != byte(pad) {
			return nil, errors.New("invalid padding")
		}
	}
	return data[:len(data)-pad], nil
}

func (c *cryptor) encrypt(plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, err
	}
	padded := pkcs7Pad(append([]byte{}, plaintext...), block.BlockSize())
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, c.iv).CryptBlocks(out, padded)
	return out, nil
}

func (c *cryptor) decrypt(ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, err
	}
	if len(ciphertext)%block.BlockSize() != 0 {
		return nil, errors.New("invalid cbc ciphertext length")
	}
	out := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, c.iv).CryptBlocks(out, ciphertext)
	return pkcs7Unpad(out, block.BlockSize())
}

// Builds hello packet: 32 bytes header with everything but magic and length set to 0xff.
func helloPacket() []byte {
	pkt := bytes.Repeat([]byte{0xff}, headerSize)
	binary.BigEndian.PutUint16(pkt[0:2], packetMagic)
	binary.BigEndian.PutUint16(pkt[2:4], headerSize)
	return pkt
}

// Encodes encrypted packet for the device.
func (c *cryptor) encode(deviceID, stamp uint32, payload []byte) ([]byte, error) {
	data, err := c.encrypt(payload)
	if err != nil {
		return nil, err
	}

	pkt := make([]byte, headerSize+len(data))
	binary.BigEndian.PutUint16(pkt[0:2], packetMagic)
	binary.BigEndian.PutUint16(pkt[2:4], uint16(len(pkt)))
	binary.BigEndian.PutUint32(pkt[4:8], 0)
	binary.BigEndian.PutUint32(pkt[8:12], deviceID)
	binary.BigEndian.PutUint32(pkt[12:16], stamp)
	copy(pkt[16:32], c.token)
	copy(pkt[32:], data)

	sum := md5Bytes(pkt)
	copy(pkt[16:32], sum)
	return pkt, nil
}

// Parses packet header.
func parseHeader(pkt []byte) (*header, error) {
	if len(pkt) < headerSize {
		return nil, errors.New("packet is too short")
	}
	if binary.BigEndian.Uint16(pkt[0:2]) != packetMagic {
		return nil, errors.New("wrong packet magic")
	}

	h := &header{
		Length:   binary.BigEndian.Uint16(pkt[2:4]),
		Unknown:  binary.BigEndian.Uint32(pkt[4:8]),
		DeviceID: binary.BigEndian.Uint32(pkt[8:12]),
		Stamp:    binary.BigEndian.Uint32(pkt[12:16]),
	}
	copy(h.Checksum[:], pkt[16:32])

	if int(h.Length) < headerSize {
		return nil, errors.New("wrong packet length")
	}
	if int(h.Length) > len(pkt) {
		return nil, errors.New("truncated packet")
	}
	return h, nil
}

// Decodes encrypted packet received from the device.
func (c *cryptor) decode(pkt []byte) (*header, []byte, error) {
	h, err := parseHeader(pkt)
	if err != nil {
		return nil, nil, err
	}

	pkt = pkt[:h.Length]
	if len(pkt) == headerSize {
		return h, nil, nil
	}

	check := make([]byte, len(pkt))
	copy(check, pkt)
	copy(check[16:32], c.token)
	if !bytes.Equal(md5Bytes(check), h.Checksum[:]) {
		return nil, nil, &ErrChecksum{}
	}

	payload, err := c.decrypt(pkt[headerSize:])
	if err != nil {
		return nil, nil, err
	}

	return h, bytes.TrimRight(payload, "\x00"), nil
}
