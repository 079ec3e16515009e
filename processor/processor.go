package processor

// Processor transforms an object in place, if it applies to it
type Processor interface {
	Applies(object interface{}) bool
	Do(object interface{}) error
}

// Chain runs its processors in order, skipping
// the ones which do not apply to the object
type Chain []Processor

func (chain Chain) Applies(object interface{}) bool {
	for _, processor := range chain {
		if processor.Applies(object) {
			return true
		}
	}
	return false
}

func (chain Chain) Do(object interface{}) error {
	for _, processor := range chain {
		if !processor.Applies(object) {
			continue
		}
		if err := processor.Do(object); err != nil {
			return err
		}
	}
	return nil
}

// Tracks returns the chain every downloaded track goes through
func Tracks() Chain {
	return Chain{Encoder{}}
}
