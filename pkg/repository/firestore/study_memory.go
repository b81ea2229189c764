package firestore

import (
	"context"
	"slices"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/studymate/pkg/domain/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// StudyMemoryCollection is the collection holding memory records.
const StudyMemoryCollection = "study_memories"

// studyMemoryDoc is the Firestore document representation of model.MemoryRecord.
type studyMemoryDoc struct {
	ID            model.MemoryRecordID `firestore:"ID"`
	Subjects      string               `firestore:"Subjects"`
	HoursPerDay   int                  `firestore:"HoursPerDay"`
	DaysAvailable int                  `firestore:"DaysAvailable"`
	Timestamp     time.Time            `firestore:"Timestamp,serverTimestamp"`
}

// newStudyMemoryDoc leaves Timestamp zero so Firestore fills in the commit time.
func newStudyMemoryDoc(subjects string, hoursPerDay, daysAvailable int) *studyMemoryDoc {
	return &studyMemoryDoc{
		ID:            model.NewMemoryRecordID(),
		Subjects:      subjects,
		HoursPerDay:   hoursPerDay,
		DaysAvailable: daysAvailable,
	}
}

func fromStudyMemoryDoc(d *studyMemoryDoc) *model.MemoryRecord {
	return &model.MemoryRecord{
		ID:            d.ID,
		Subjects:      d.Subjects,
		HoursPerDay:   d.HoursPerDay,
		DaysAvailable: d.DaysAvailable,
		Timestamp:     d.Timestamp,
	}
}

type studyMemoryRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newStudyMemoryRepository(client *firestore.Client) *studyMemoryRepository {
	return &studyMemoryRepository{client: client}
}

func (r *studyMemoryRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(r.collectionPrefix + StudyMemoryCollection)
}

func (r *studyMemoryRepository) Append(ctx context.Context, subjects string, hoursPerDay, daysAvailable int) (*model.MemoryRecord, error) {
	doc := newStudyMemoryDoc(subjects, hoursPerDay, daysAvailable)

	// Each record is its own document, so concurrent appends never collide.
	wr, err := r.collection().Doc(string(doc.ID)).Create(ctx, doc)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to append study memory", goerr.V("id", doc.ID))
	}

	// The server timestamp equals the commit time of the write.
	doc.Timestamp = wr.UpdateTime.UTC()
	return fromStudyMemoryDoc(doc), nil
}

func (r *studyMemoryRepository) Recent(ctx context.Context, n int) ([]*model.MemoryRecord, error) {
	if n <= 0 {
		return []*model.MemoryRecord{}, nil
	}

	iter := r.collection().
		OrderBy("Timestamp", firestore.Desc).
		OrderBy("ID", firestore.Desc).
		Limit(n).
		Documents(ctx)
	defer iter.Stop()

	records := make([]*model.MemoryRecord, 0, n)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if status.Code(err) == codes.FailedPrecondition {
			return nil, goerr.Wrap(err, "study memory index is missing, run the migrate command",
				goerr.V("collection", StudyMemoryCollection))
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate study memories")
		}

		var d studyMemoryDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal study memory", goerr.V("docID", doc.Ref.ID))
		}
		records = append(records, fromStudyMemoryDoc(&d))
	}

	slices.Reverse(records)
	return records, nil
}
