package jpegstructure

import (
	"github.com/pkg/errors"

	"github.com/photodedup/photodedup/internal/reader"
)

// zigZag maps zig-zag index -> natural (row-major) index within an 8x8
// block.
var zigZag = [64]int{
	0, 1, 8, 16, 9, 2, 3, 10,
	17, 24, 32, 25, 18, 11, 4, 5,
	12, 19, 26, 33, 40, 48, 41, 34,
	27, 20, 13, 6, 7, 14, 21, 28,
	35, 42, 49, 56, 57, 50, 43, 36,
	29, 22, 15, 23, 30, 37, 44, 51,
	58, 59, 52, 45, 38, 31, 39, 46,
	53, 60, 61, 54, 47, 55, 62, 63,
}

func parseDQT(r *reader.MemoryReader, d *Desc, segEnd int64) error {
	for r.Offset() < segEnd {
		pqTq := r.ReadUint(1)
		if r.Err() != nil {
			return r.Err()
		}
		pq := int(pqTq >> 4)
		tq := int(pqTq & 0x0F)
		if tq > 3 {
			return errors.Errorf("invalid quantization table destination %d", tq)
		}
		qt := &QuantTable{Tq: tq, Precision: pq}
		valSize := 1
		if pq == 1 {
			valSize = 2
		}
		for i := 0; i < 64; i++ {
			v := r.ReadUint(valSize)
			if r.Err() != nil {
				return r.Err()
			}
			qt.Coeffs[zigZag[i]] = int32(v)
		}
		d.QuantTabs[tq] = qt
	}
	return nil
}

func parseDHT(r *reader.MemoryReader, d *Desc, segEnd int64) error {
	for r.Offset() < segEnd {
		tcTh := r.ReadUint(1)
		if r.Err() != nil {
			return r.Err()
		}
		class := int(tcTh >> 4)
		th := int(tcTh & 0x0F)
		if class > 1 || th > 3 {
			return errors.Errorf("invalid Huffman table class/destination %d/%d", class, th)
		}
		ht := &HuffTable{Class: class, Th: th}
		total := 0
		for i := 0; i < 16; i++ {
			n := r.ReadUint(1)
			if r.Err() != nil {
				return r.Err()
			}
			ht.Bits[i] = int(n)
			total += int(n)
		}
		ht.HuffVal = r.Read(total)
		if r.Err() != nil {
			return r.Err()
		}
		if err := buildHuffmanTable(ht); err != nil {
			return err
		}
		d.HuffTabs[huffKey{class, th}] = ht
	}
	return nil
}
