package firestore

type StudyMemoryDoc = studyMemoryDoc

var NewStudyMemoryDoc = newStudyMemoryDoc
