package mines

import "github.com/sirupsen/logrus"

// Log traces generation, flood fills and terminal transitions at debug level.
var Log = logrus.New()
