package sink

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/apache/arrow/go/v14/arrow"
	"github.com/apache/arrow/go/v14/arrow/array"
	"github.com/apache/arrow/go/v14/arrow/memory"
	"github.com/apache/arrow/go/v14/parquet"
	"github.com/apache/arrow/go/v14/parquet/compress"
	"github.com/apache/arrow/go/v14/parquet/pqarrow"

	"github.com/wegman-software/osmclean/internal/reshape"
)

// ParquetSchema is the column layout of the Parquet sink
var ParquetSchema = arrow.NewSchema([]arrow.Field{
	{Name: "element_type", Type: arrow.BinaryTypes.String, Nullable: false},
	{Name: "id", Type: arrow.BinaryTypes.String, Nullable: false},
	{Name: "document", Type: arrow.BinaryTypes.String, Nullable: false},
}, nil)

// Parquet writes documents to a zstd-compressed Parquet file as JSON text
type Parquet struct {
	file      *os.File
	writer    *pqarrow.FileWriter
	builder   *array.RecordBuilder
	batchSize int
	count     int
}

// CreateParquet creates a new Parquet sink at path
func CreateParquet(path string, batchSize int) (*Parquet, error) {
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet file: %w", err)
	}

	writerProps := parquet.NewWriterProperties(
		parquet.WithCompression(compress.Codecs.Zstd),
		parquet.WithDictionaryDefault(false),
	)

	writer, err := pqarrow.NewFileWriter(ParquetSchema, f, writerProps, pqarrow.DefaultWriterProps())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create parquet writer: %w", err)
	}

	return &Parquet{
		file:      f,
		writer:    writer,
		builder:   array.NewRecordBuilder(memory.DefaultAllocator, ParquetSchema),
		batchSize: batchSize,
	}, nil
}

func (p *Parquet) Write(ctx context.Context, doc *reshape.Document) error {
	b, err := marshal(doc)
	if err != nil {
		return err
	}
	elemType, id := elementKey(doc)

	p.builder.Field(0).(*array.StringBuilder).Append(elemType)
	p.builder.Field(1).(*array.StringBuilder).Append(id)
	p.builder.Field(2).(*array.StringBuilder).Append(string(b))

	p.count++
	if p.count >= p.batchSize {
		return p.Flush(ctx)
	}
	return nil
}

// Flush writes the buffered rows as one record batch
func (p *Parquet) Flush(context.Context) error {
	if p.count == 0 {
		return nil
	}
	rec := p.builder.NewRecord()
	defer rec.Release()
	err := p.writer.Write(rec)
	p.count = 0
	return err
}

// Close finalizes the file footer. Unflushed rows are discarded.
func (p *Parquet) Close() error {
	p.builder.Release()
	if err := p.writer.Close(); err != nil {
		return err
	}
	if err := p.file.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		return err
	}
	return nil
}
