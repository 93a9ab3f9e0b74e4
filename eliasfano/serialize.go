package eliasfano

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/rpcpool/sux-go/compactarray"
	"github.com/rpcpool/sux-go/sparseindex"
)

// headerSize is the fixed, word-aligned size in bytes of the on-disk
// header: universe (8) + numberOfElements (8) + lowBitCount (1) +
// quantumLog2 (1) + highBitsLen (8), padded to the next 8-byte boundary.
const headerSize = 32

// WriteTo serializes ef in the fixed on-disk layout: header, low-bits
// words, high-bits raw words, ones-samples, zeros-samples, every field
// big-endian. It satisfies io.WriterTo.
func (ef *EliasFano) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)

	header := make([]byte, headerSize)
	binary.BigEndian.PutUint64(header[0:8], ef.universe)
	binary.BigEndian.PutUint64(header[8:16], ef.numberOfElements)
	header[16] = byte(ef.lowBits.WordSize())
	header[17] = byte(quantumLog2Of(ef.highBits))
	binary.BigEndian.PutUint64(header[24:32], ef.highBits.Len())
	if _, err := bw.Write(header); err != nil {
		return 0, fmt.Errorf("eliasfano: writing header: %w", err)
	}
	written := int64(headerSize)

	n, err := writeWords(bw, ef.lowBits.Words())
	written += n
	if err != nil {
		return written, fmt.Errorf("eliasfano: writing low bits: %w", err)
	}

	wordsNeeded := (ef.highBits.Len() + 63) / 64
	n, err = writeWords(bw, ef.highBits.Bits()[:wordsNeeded])
	written += n
	if err != nil {
		return written, fmt.Errorf("eliasfano: writing high bits: %w", err)
	}

	n, err = writeWords(bw, ef.highBits.OnesSamples())
	written += n
	if err != nil {
		return written, fmt.Errorf("eliasfano: writing ones samples: %w", err)
	}

	n, err = writeWords(bw, ef.highBits.ZerosSamples())
	written += n
	if err != nil {
		return written, fmt.Errorf("eliasfano: writing zeros samples: %w", err)
	}

	if err := bw.Flush(); err != nil {
		return written, fmt.Errorf("eliasfano: flushing: %w", err)
	}
	return written, nil
}

func writeWords(w io.Writer, words []uint64) (int64, error) {
	buf := make([]byte, 8*len(words))
	for i, v := range words {
		binary.BigEndian.PutUint64(buf[i*8:], v)
	}
	n, err := w.Write(buf)
	return int64(n), err
}

// ReadFrom deserializes an EliasFano previously written by WriteTo. The
// quantum log2 used when serializing is read back verbatim from the
// header, so the caller does not need to know it in advance.
func ReadFrom(r io.Reader) (*EliasFano, error) {
	br := bufio.NewReader(r)

	header := make([]byte, headerSize)
	if _, err := io.ReadFull(br, header); err != nil {
		return nil, fmt.Errorf("eliasfano: reading header: %w", err)
	}
	universe := binary.BigEndian.Uint64(header[0:8])
	numberOfElements := binary.BigEndian.Uint64(header[8:16])
	lowBitCount := int(header[16])
	q := uint(header[17])
	highBitsLen := binary.BigEndian.Uint64(header[24:32])

	lowWordsCount := compactarray.VecSize(lowBitCount, numberOfElements)
	lowWords, err := readWords(br, lowWordsCount)
	if err != nil {
		return nil, fmt.Errorf("eliasfano: reading low bits: %w", err)
	}
	lowBits := compactarray.FromWords(lowBitCount, numberOfElements, lowWords)

	highWordsNeeded := (highBitsLen + 63) / 64
	highWords, err := readWords(br, highWordsNeeded)
	if err != nil {
		return nil, fmt.Errorf("eliasfano: reading high bits: %w", err)
	}
	// Two extra sentinel words mirror the slack the builders always leave
	// past the last real word, so rank/select never index out of bounds
	// at the tail.
	highWords = append(highWords, 0, 0)

	nZeros := highBitsLen - numberOfElements
	qMask := uint64(1)<<q - 1
	onesSamplesCount := ceilDiv(numberOfElements, qMask+1)
	zerosSamplesCount := ceilDiv(nZeros, qMask+1)

	onesSamples, err := readWords(br, onesSamplesCount)
	if err != nil {
		return nil, fmt.Errorf("eliasfano: reading ones samples: %w", err)
	}
	zerosSamples, err := readWords(br, zerosSamplesCount)
	if err != nil {
		return nil, fmt.Errorf("eliasfano: reading zeros samples: %w", err)
	}

	highBits := sparseindex.FromParts(highWords, highBitsLen, numberOfElements, nZeros, onesSamples, zerosSamples, q)

	return &EliasFano{
		lowBits:          lowBits,
		highBits:         highBits,
		universe:         universe,
		numberOfElements: numberOfElements,
	}, nil
}

func readWords(r io.Reader, count uint64) ([]uint64, error) {
	if count == 0 {
		return nil, nil
	}
	buf := make([]byte, 8*count)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	words := make([]uint64, count)
	for i := range words {
		words[i] = binary.BigEndian.Uint64(buf[i*8:])
	}
	return words, nil
}

func ceilDiv(a, b uint64) uint64 {
	if b == 0 || a == 0 {
		return 0
	}
	return (a + b - 1) / b
}

// quantumLog2Of recovers the quantum the index was built with, so it can
// be stamped into the header without EliasFano needing its own copy.
func quantumLog2Of(idx *sparseindex.Index) uint { return idx.Quantum() }
