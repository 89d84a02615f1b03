package parquet

import (
	"io"

	"go.uber.org/zap"

	"github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/writer"
)

type PokemonWriter struct {
	buffer *buffer.BufferFile
	writer *writer.ParquetWriter
	sugar  *zap.SugaredLogger
	rows   int
}

const InitialCapacity = 1024 * 1024

func NewPokemonWriter(sugar *zap.SugaredLogger) (*PokemonWriter, error) {
	bufferFile := buffer.NewBufferFileCapacity(InitialCapacity)
	w, err := writer.NewParquetWriter(bufferFile, new(PokemonRow), 4)
	if err != nil {
		return nil, err
	}
	return &PokemonWriter{
		buffer: bufferFile,
		writer: w,
		sugar:  sugar,
	}, nil
}

func (w *PokemonWriter) Write(row PokemonRow) error {
	if err := w.writer.Write(row); err != nil {
		return err
	}
	w.rows++
	return nil
}

// Finish flushes the footer and rewinds the buffer for reading.
func (w *PokemonWriter) Finish() error {
	if err := w.writer.WriteStop(); err != nil {
		return err
	}
	w.sugar.Infof("Parquet file finished, %d rows, %d bytes", w.rows, w.Size())
	_, err := w.buffer.Seek(0, io.SeekStart)
	return err
}

func (w *PokemonWriter) Rows() int {
	return w.rows
}

func (w *PokemonWriter) Size() int {
	return len(w.buffer.Bytes())
}

func (w *PokemonWriter) BufferReader() io.Reader {
	return w.buffer
}
